package escrow

import "context"

type Repository interface {
	// Deposit credits the named account, creating it at zero first if
	// needed. Fails on arithmetic overflow.
	Deposit(ctx context.Context, name string, amount uint64) (*Account, error)
	// Withdraw debits the named account; ErrInsufficientFunds when the
	// balance does not cover the amount.
	Withdraw(ctx context.Context, name string, amount uint64) (*Account, error)
	Balance(ctx context.Context, name string) (uint64, error)
}
