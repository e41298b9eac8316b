package attestation

import "context"

// Attestation is an already-verified credit statement about a borrower,
// supplied by an external trust oracle. The core consumes the values and
// never re-derives trust; signature/quorum checks happen upstream.
type Attestation struct {
	BorrowerID               string
	CreditScore              uint32
	RecommendedCollateralBps uint32
}

// Oracle is a read-only capability. A nil Oracle disables the check.
type Oracle interface {
	Lookup(ctx context.Context, borrowerID string) (*Attestation, error)
}
