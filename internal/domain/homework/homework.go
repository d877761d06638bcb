// internal/domain/homework/homework.go
package homework

import "time"

// Status is the review state reported by the homework API.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

// verdicts is the status vocabulary. Read-only after init.
var verdicts = map[Status]string{
	StatusApproved:  "Hooray! Your homework is checked and everything is cool!",
	StatusReviewing: "The tutor started to review your homework",
	StatusRejected:  "Ooooops! There are some mistakes in your homework. Please, fix it",
}

// Verdict returns the text for a status and whether the status is known.
func Verdict(s Status) (string, bool) {
	v, ok := verdicts[s]
	return v, ok
}

// Statuses lists the known statuses.
func Statuses() []Status {
	return []Status{StatusApproved, StatusReviewing, StatusRejected}
}

// Record is one entry of the "homeworks" list.
type Record struct {
	Status       Status `json:"status"`
	HomeworkName string `json:"homework_name"`
}

// Response is the decoded body of the status endpoint.
// Homeworks is nil when the key is missing or null.
type Response struct {
	Homeworks   []Record `json:"homeworks"`
	CurrentDate int64    `json:"current_date,omitempty"`
}

// Cursor is the unix timestamp sent as from_date.
type Cursor int64

func NewCursor(t time.Time) Cursor {
	return Cursor(t.Unix())
}

func (c Cursor) Int64() int64 { return int64(c) }
