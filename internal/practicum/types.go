package practicum

// Homework is a single homework record as returned by the API.
// Only HomeworkName and Status are required by the contract; the rest is
// carried for the journal and debug logging.
type Homework struct {
	ID              int64  `json:"id,omitempty"`
	HomeworkName    string `json:"homework_name"`
	Status          string `json:"status"`
	ReviewerComment string `json:"reviewer_comment,omitempty"`
	DateUpdated     string `json:"date_updated,omitempty"`
	LessonName      string `json:"lesson_name,omitempty"`
}

// StatusesResponse is the decoded body of a homework statuses query.
// CurrentDate is a pointer and Homeworks keeps its nil-ness so that
// CheckResponse can tell a missing key from a present-but-empty one.
type StatusesResponse struct {
	Homeworks   []Homework `json:"homeworks"`
	CurrentDate *int64     `json:"current_date"`
}
