package kiosk

import (
	"context"
)

// Repository defines the operations for reading the kiosk snapshot and
// clearing expired remarks.
type Repository interface {
	ListByPartner(ctx context.Context, serviceBank string) ([]*CollectionPoint, error)
	ListAll(ctx context.Context) ([]*CollectionPoint, error)
	ClearRemark(ctx context.Context, kioskName string) error
}
