// internal/domain/kiosk/kiosk.go
package kiosk

import (
	"time"
)

// CollectionPoint is one physical cash-accepting kiosk. Rows are refreshed
// from telemetry by an external loader; this service only reads them, except
// for LastRemark which the reset step may clear.
type CollectionPoint struct {
	ID              int64
	Name            string
	CurrentAmount   float64
	LastRemark      string // operator note, normalized to single-spaced text
	BusinessDays    string // e.g. "Monday - Saturday"
	Schedule        string // frequency note; may carry the "No-Holiday" marker
	AssignedPartner string
	UpdatedAt       time.Time
}
