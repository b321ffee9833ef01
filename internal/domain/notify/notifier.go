// internal/domain/notify/notifier.go
package notify

import (
	"context"

	"kiosk_pickup_scheduler/internal/domain/collection"
	"kiosk_pickup_scheduler/internal/domain/partner"
)

// Notifier hands a finished pickup request batch to the notification
// transport. Batches produced by capacity rollover arrive as separate calls
// with distinct target dates. Implementations own the message format; this
// core only guarantees the batch content and order.
type Notifier interface {
	SendPickupRequests(ctx context.Context, profile *partner.Profile, batch collection.Batch) error
}
