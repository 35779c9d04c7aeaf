package storage

import "time"

type SessionOutcome string

const (
	OutcomeCompleted SessionOutcome = "completed"
	OutcomeReset     SessionOutcome = "reset"
)

// Session is one timer run as it ended.
type Session struct {
	ID             string
	TotalSeconds   int
	ElapsedSeconds int
	Outcome        SessionOutcome
	StartedAt      time.Time
	EndedAt        time.Time
}

type SessionFilter struct {
	Outcome SessionOutcome
	Since   *time.Time
	Limit   int
	Offset  int
}
