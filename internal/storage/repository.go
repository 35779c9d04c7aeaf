package storage

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidSession = errors.New("storage: invalid session")

type History interface {
	RecordSession(ctx context.Context, in Session) error
	ListSessions(ctx context.Context, filter SessionFilter) ([]Session, error)
	CountCompleted(ctx context.Context, since time.Time) (int, error)
	Clear(ctx context.Context) error
}
