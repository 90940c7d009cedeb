package evaluation

import "errors"

var (
	ErrInvalidIdentifier = errors.New("invalid user id")
	ErrConnectivity      = errors.New("database is unreachable or rejected the request")
	ErrNoAnswers         = errors.New("no answers retrieved")
	ErrScoring           = errors.New("scoring service failed")
	ErrMalformedResponse = errors.New("malformed scoring response")
)

// Kind returns a short stable name for the failure kind of err.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidIdentifier):
		return "invalid_identifier"
	case errors.Is(err, ErrConnectivity):
		return "connectivity"
	case errors.Is(err, ErrNoAnswers):
		return "no_answers"
	case errors.Is(err, ErrScoring):
		return "scoring"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed_response"
	default:
		return "unknown"
	}
}

// Describe returns the operator facing message for the stage that failed.
func Describe(err error) string {
	switch Kind(err) {
	case "":
		return ""
	case "invalid_identifier":
		return "no answers retrieved, cannot proceed: the user id is not a 24 character hexadecimal string"
	case "connectivity":
		return "no answers retrieved, cannot proceed: the database could not be reached"
	case "no_answers":
		return "no answers retrieved, cannot proceed"
	case "scoring":
		return "evaluation failed: the scoring service call did not succeed, check the api key and network connection"
	case "malformed_response":
		return "evaluation failed: the scoring service reply is not the expected scores json"
	default:
		return "evaluation failed"
	}
}
