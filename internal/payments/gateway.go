package payments

import "context"

// Status is the settlement state of a payment as reported by the gateway.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusPending Status = "pending"
)

// IsTerminal reports whether the gateway can still change its answer.
// Pending payments must be re-queried; settled ones never change.
func (s Status) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

// Gateway answers payment status questions by transaction reference.
type Gateway interface {
	GetStatus(ctx context.Context, reference string) (Status, error)
}
