package model

import "time"

// TrainingExample is an append-only classification sample used to build
// system prompts. Global examples live in one shared index; user
// examples live in a per-user index. Examples are never updated in
// place; ranking at query time decides which ones surface.
type TrainingExample struct {
	Query         string                 `json:"query"`
	Intent        Intent                 `json:"intent"`
	Confidence    float64                `json:"confidence"`
	ExtractedData map[string]interface{} `json:"extracted_data"`
	Timestamp     time.Time              `json:"timestamp"`
	UserFeedback  *bool                  `json:"user_feedback"`
	IsGlobal      bool                   `json:"is_global"`
	DataQuality   int                    `json:"data_quality"`
}
