// Package answer provides the HTTP client for the Karm answering service.
//
// # Overview
//
// The service exposes a single question endpoint plus a status root:
//
//   - POST /api/question: body {"question": "..."}, reply {"answer": "..."}
//   - GET /: reply {"message": "..."}, used for reachability checks
//
// # Outcomes
//
// Ask never returns a bare error. Every call ends in exactly one Result:
//
//   - OutcomeAnswered: 2xx reply whose JSON object has a non-empty string "answer"
//   - OutcomeMalformed: 2xx reply that is valid JSON but has no usable "answer"
//     (missing, null, wrong type, empty, or the body is not an object)
//   - OutcomeTransportFailure: non-2xx status (*StatusError), a body that is
//     not JSON, or a request that could not complete
//
// Result.Err keeps the underlying cause so callers can log it, while the
// submission controller collapses every transport failure into one message.
//
// # Request Handling
//
// Requests go through a resty client configured with:
//   - Accept: application/json and User-Agent: karm/0.1
//   - zero retries (one request per Ask)
//   - no timeout unless Options.Timeout is set
//
// Cancellation is driven by the caller's context.
//
// # URL Construction
//
// The base URL accepts the same forms as the config file:
//
//   - "127.0.0.1:5000" → http://127.0.0.1:5000
//   - "http://10.0.2.2:5000/" → http://10.0.2.2:5000
//   - "https://qa.example.com/karm" → https://qa.example.com/karm
//
// # Thread Safety
//
// Client is safe for concurrent use.
package answer
