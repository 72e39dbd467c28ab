package model

type Problem struct {
	ID        string `json:"id" yaml:"id"`
	ContestID string `json:"contest_id" yaml:"contest_id"` // Not enforced as a foreign key
	Title     string `json:"title" yaml:"title"`
}

// FilterByContest returns the problems belonging to contestID, keeping order.
func FilterByContest(problems []Problem, contestID string) []Problem {
	filtered := make([]Problem, 0, len(problems))
	for _, p := range problems {
		if p.ContestID == contestID {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
