package models

// Break represents a pause taken during a study session.
type Break struct {
	StartTime       string `json:"start_time"` // RFC3339 timestamp
	EndTime         string `json:"end_time"`   // RFC3339 timestamp
	DurationSeconds int    `json:"duration_seconds"`
}

// StudySession is a completed study session together with the analysis
// produced when it was recorded. Analysis fields are written once at
// creation and never recomputed.
type StudySession struct {
	ID             string   `json:"id"`
	Topic          string   `json:"topic"`
	PlannedMinutes int      `json:"planned_minutes"`
	ActualMinutes  float64  `json:"actual_minutes"`
	StartTime      string   `json:"start_time"` // RFC3339 timestamp
	EndTime        string   `json:"end_time"`   // RFC3339 timestamp
	Breaks         []Break  `json:"breaks"`
	TotalBreakTime int      `json:"total_break_time"` // seconds
	Notes          []string `json:"notes"`

	AISummary           string  `json:"ai_summary"`
	TopicRelevanceScore float64 `json:"topic_relevance_score"`
	FocusFeedback       string  `json:"focus_feedback"`
	Completed           bool    `json:"completed"`

	TopicDriftDetected     bool     `json:"topic_drift_detected"`
	DriftDetails           string   `json:"drift_details"`
	OverconfidenceDetected bool     `json:"overconfidence_detected"`
	OverconfidenceDetails  string   `json:"overconfidence_details"`
	RevisionTasks          []string `json:"revision_tasks"`
	NextSessionPlan        string   `json:"next_session_plan"`
}
