// internal/domain/collection/request.go
package collection

import (
	"context"
	"time"
)

// PickupRequest is one kiosk slated for pickup on a target date. Never
// mutated after the aggregator creates it.
type PickupRequest struct {
	DisplayName string // kiosk name, possibly annotated with a revisit marker
	Kiosk       string // bare kiosk name, used for dedup and persistence
	Amount      float64
	Partner     string
	Subject     string
	RawRemark   string // carried through for downstream audit
}

// Batch is an ordered set of pickup requests sharing one collection date.
// A capacity-capped run produces two batches with distinct dates.
type Batch struct {
	TargetDate time.Time
	Requests   []PickupRequest
}

// Names returns the bare kiosk names in batch order.
func (b Batch) Names() []string {
	names := make([]string, len(b.Requests))
	for i, r := range b.Requests {
		names[i] = r.Kiosk
	}
	return names
}

// RequestRepository persists issued pickup requests. The open-request set is
// what deduplicates requests across runs until the reset step clears them.
type RequestRepository interface {
	// ListOpenNames returns kiosk names with an open, unresolved request.
	ListOpenNames(ctx context.Context, serviceBank string) (map[string]bool, error)
	// RecordBatch stores every request of a batch as open.
	RecordBatch(ctx context.Context, batch Batch) error
	// CloseBefore resolves open requests whose target date is before cutoff.
	CloseBefore(ctx context.Context, serviceBank string, cutoff time.Time) error
}
