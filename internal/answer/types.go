package answer

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Outcome classifies a finished exchange with the answering service.
type Outcome int

const (
	// OutcomeAnswered means a 2xx reply carried a usable answer.
	OutcomeAnswered Outcome = iota
	// OutcomeMalformed means a 2xx reply was valid JSON without a usable answer.
	OutcomeMalformed
	// OutcomeTransportFailure covers non-2xx replies, non-JSON bodies and
	// calls that never completed.
	OutcomeTransportFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAnswered:
		return "answered"
	case OutcomeMalformed:
		return "malformed"
	case OutcomeTransportFailure:
		return "transport_failure"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result is the tagged outcome of a single Ask call. Answer is only set for
// OutcomeAnswered and Err only for OutcomeTransportFailure.
type Result struct {
	Outcome Outcome
	Answer  string
	Err     error
}

// Answered builds an OutcomeAnswered result.
func Answered(text string) Result {
	return Result{Outcome: OutcomeAnswered, Answer: text}
}

// Malformed builds an OutcomeMalformed result.
func Malformed() Result {
	return Result{Outcome: OutcomeMalformed}
}

// TransportFailure builds an OutcomeTransportFailure result.
func TransportFailure(err error) Result {
	if err == nil {
		err = errors.New("transport failure")
	}
	return Result{Outcome: OutcomeTransportFailure, Err: err}
}

// StatusError reports a reply outside the 2xx range.
type StatusError struct {
	Path string
	Code int
}

func (e *StatusError) Error() string {
	text := http.StatusText(e.Code)
	if text == "" {
		return fmt.Sprintf("api %s returned status %d", e.Path, e.Code)
	}
	return fmt.Sprintf("api %s returned status %d (%s)", e.Path, e.Code, text)
}

// QuestionRequest mirrors the body of POST /api/question.
type QuestionRequest struct {
	Question string `json:"question"`
}

// AnswerResponse mirrors a well-formed reply from POST /api/question.
type AnswerResponse struct {
	Answer string `json:"answer"`
}

// HealthResponse mirrors GET /.
type HealthResponse struct {
	Message string `json:"message"`
}

// ErrorResponse mirrors the detail payload the service sends with 4xx replies.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// classifyBody applies the answer schema to a 2xx body. A body that is not
// JSON at all never finished decoding, so it counts as a transport failure;
// valid JSON without a non-empty string "answer" member is malformed.
func classifyBody(body []byte) Result {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return TransportFailure(fmt.Errorf("decode response: %w", err))
	}
	obj, ok := payload.(map[string]any)
	if !ok {
		return Malformed()
	}
	text, ok := obj["answer"].(string)
	if !ok || text == "" {
		return Malformed()
	}
	return Answered(text)
}
