package model

// Common verdicts reported by the judge. Result is stored as-is, so values
// outside this list are accepted too.
const (
	ResultAccepted            = "AC"
	ResultWrongAnswer         = "WA"
	ResultTimeLimitExceeded   = "TLE"
	ResultMemoryLimitExceeded = "MLE"
	ResultRuntimeError        = "RE"
	ResultCompilationError    = "CE"
)

// Submission is a single judged submission. Once a submission id is stored,
// only UserID may change (the judge reuses ids on rejudge).
type Submission struct {
	ID            int64   `json:"id" yaml:"id"`
	EpochSecond   int64   `json:"epoch_second" yaml:"epoch_second"`
	ProblemID     string  `json:"problem_id" yaml:"problem_id"`
	ContestID     string  `json:"contest_id" yaml:"contest_id"`
	UserID        string  `json:"user_id" yaml:"user_id"`
	Language      string  `json:"language" yaml:"language"`
	Point         float64 `json:"point" yaml:"point"`
	Length        int64   `json:"length" yaml:"length"`
	Result        string  `json:"result" yaml:"result"`
	ExecutionTime *int64  `json:"execution_time,omitempty" yaml:"execution_time,omitempty"` // Milliseconds, nil when the judge reports none
}
