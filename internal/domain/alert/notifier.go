package alert

import "context"

// Notifier is the external notification sink. Delivery transport is not the
// engine's concern; a failed Deliver is retried by re-evaluation on the next
// sweep as long as no ledger record was written.
type Notifier interface {
	Deliver(ctx context.Context, p Payload) error
}
