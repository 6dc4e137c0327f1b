package booking

import (
	"time"

	"staybcn/internal/domain/pricing"
)

// Confirmation is the immutable outcome of a successful confirm: an opaque code,
// the confirmation instant, and snapshots of the request and its price at that
// moment. Created exactly once per confirmed draft, never mutated afterwards.
type Confirmation struct {
	Code        string
	ConfirmedAt time.Time
	Request     Request
	Price       pricing.PriceBreakdown
}
