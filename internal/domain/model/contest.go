package model

// Contest is a contest as listed by the judge. RateChange is the rated band
// label, "-" for unrated contests.
type Contest struct {
	ID               string `json:"id" yaml:"id"`
	StartEpochSecond int64  `json:"start_epoch_second" yaml:"start_epoch_second"`
	DurationSecond   int64  `json:"duration_second" yaml:"duration_second"`
	Title            string `json:"title" yaml:"title"`
	RateChange       string `json:"rate_change" yaml:"rate_change"`
}
