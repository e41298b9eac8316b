package event

import "context"

type Repository interface {
	Append(ctx context.Context, e *Event) error
	ListByLoanID(ctx context.Context, loanID string) ([]*Event, error)
}

// Publisher fans events out to external consumers after commit.
// Publishing is best-effort; the persisted row is the source of truth.
type Publisher interface {
	Publish(ctx context.Context, e *Event) error
}
