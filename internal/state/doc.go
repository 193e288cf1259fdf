// Package state holds the per-screen state of the Karm client.
//
// # Overview
//
// A Store is created when the screen mounts and owns three models:
//
//   - Input: the question text as typed
//   - Theme: the light/dark selection and its fixed Palette
//   - Controller: the submission state machine and the rendered answer
//
// The UI reads Store.Snapshot() after every change and renders from it. The
// background health poller writes reachability results with UpdateHealth.
//
// # Submission Lifecycle
//
//	        Begin (question non-blank)
//	Idle ───────────────────────────────→ InFlight
//	 ↑  ↑                                   │
//	 │  │ Cancel                            │ Resolve
//	 │  └───────────────────────────────────┤
//	 │                                      ↓
//	 └──────────── Clear ────────── Succeeded / Failed
//
// Begin while an exchange is outstanding returns ErrSubmissionInFlight and
// changes nothing. Clear moves the phase to Idle but leaves the exchange
// outstanding, so Begin keeps refusing until Resolve or Cancel releases it.
// Begin with a blank question returns ErrEmptyQuestion, a *ValidationError
// whose Notice is shown in a blocking dialog; the phase does not move.
//
// Resolve maps answer outcomes onto phases:
//
//	OutcomeAnswered         → Succeeded, Answer = reply text
//	OutcomeMalformed        → Succeeded, Answer = MalformedAnswerText
//	OutcomeTransportFailure → Failed,    Answer = TransportFailureText
//
// Both failure causes (bad status and unreachable service) produce the same
// text. The cause is kept in Controller.LastError for logs only.
//
// # Concurrency Model
//
// Begin, Resolve and Clear mutate state under the controller mutex. Exchange
// holds no lock and is the only call that blocks, so the UI runs it inside a
// tea.Cmd and feeds the result back through Resolve on its event loop.
//
// Clear does not cancel an outstanding exchange. When that exchange finishes
// its result still lands in Answer and Phase, even after the user cleared the
// screen. At most one exchange is outstanding at a time. Cancel is the opt-in
// way to abort one: it cancels the request context and the late result is
// dropped.
//
// # Snapshots
//
// Snapshot copies every field, including a wrapped copy of the last health
// error, so the UI never shares mutable data with the poller goroutine.
package state
