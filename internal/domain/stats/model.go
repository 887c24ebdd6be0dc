package stats

import "time"

type TagStats struct {
	Total      int `json:"total"`
	Safe       int `json:"safe"`
	NeedHelp   int `json:"need_help"`
	NoResponse int `json:"no_response"`
}

type Statistics struct {
	TotalPeople     int                 `json:"total_people"`
	SafeCount       int                 `json:"safe_count"`
	NeedHelpCount   int                 `json:"need_help_count"`
	NoResponseCount int                 `json:"no_response_count"`
	ResponseRate    float64             `json:"response_rate"`
	TagStatistics   map[string]TagStats `json:"tag_statistics"`
	LastUpdated     time.Time           `json:"last_updated"`
}
