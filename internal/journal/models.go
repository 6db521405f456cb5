package journal

import (
	"database/sql"
	"time"
)

// Cycle records one iteration of the poll loop: when it ran, what the
// query window was, how many homework records came back, and how it ended.
type Cycle struct {
	ID        uint      `db:"id"         json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	FromDate      int64          `db:"from_date"      json:"from_date"`
	HomeworksSeen int            `db:"homeworks_seen" json:"homeworks_seen"`
	Notified      bool           `db:"notified"       json:"notified"`
	ErrorCode     sql.NullString `db:"error_code"     json:"error_code,omitempty"`
	ErrorText     sql.NullString `db:"error_text"     json:"error_text,omitempty"`
}

// Notification kinds recorded in the journal.
const (
	KindStatusChange = "status_change"
	KindFailure      = "failure"
)

// Notification records one message accepted by Telegram.
type Notification struct {
	ID        uint      `db:"id"         json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	Kind string `db:"kind" json:"kind"`
	Text string `db:"text" json:"text"`
}
