// internal/domain/partner/registry.go
package partner

import (
	"fmt"
	"time"

	"kiosk_pickup_scheduler/internal/domain/calendar"
)

// Custom errors
var ErrProfileNotFound = fmt.Errorf("partner profile not found")

// Registry is the static lookup of partner profiles, keyed by service bank
// name. Built once at startup and never mutated during a run.
type Registry struct {
	profiles map[string]*Profile
	order    []string
}

// NewRegistry validates and indexes the given profiles.
func NewRegistry(profiles ...*Profile) (*Registry, error) {
	r := &Registry{profiles: make(map[string]*Profile, len(profiles))}
	for _, p := range profiles {
		if err := validateProfile(p); err != nil {
			return nil, fmt.Errorf("profile %q: %w", p.ServiceBank, err)
		}
		if _, exists := r.profiles[p.ServiceBank]; exists {
			return nil, fmt.Errorf("duplicate profile for %q", p.ServiceBank)
		}
		r.profiles[p.ServiceBank] = p
		r.order = append(r.order, p.ServiceBank)
	}
	return r, nil
}

// Get returns the profile for a service bank.
func (r *Registry) Get(serviceBank string) (*Profile, error) {
	p, ok := r.profiles[serviceBank]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

// ServiceBanks lists the registered partners in registration order.
func (r *Registry) ServiceBanks() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func validateProfile(p *Profile) error {
	if p.ServiceBank == "" {
		return fmt.Errorf("service bank name is empty")
	}
	for _, day := range calendar.AllDayAbbrevs() {
		if _, ok := p.Thresholds[day]; !ok {
			return fmt.Errorf("threshold table is missing %s", day)
		}
	}
	for name, days := range p.FixedSchedules {
		if len(days) == 0 {
			return fmt.Errorf("fixed schedule for %q has no weekdays", name)
		}
	}
	seen := make(map[string]bool, len(p.PairedKiosks))
	for _, name := range p.PairedKiosks {
		if seen[name] {
			return fmt.Errorf("paired kiosk %q listed twice", name)
		}
		seen[name] = true
	}
	if p.SaturdayCap < 0 {
		return fmt.Errorf("saturday cap must not be negative")
	}
	return nil
}

// defaultThresholds is the production threshold table shared by all partners.
func defaultThresholds() map[calendar.DayAbbrev]float64 {
	return map[calendar.DayAbbrev]float64{
		calendar.Monday:    300000,
		calendar.Tuesday:   310000,
		calendar.Wednesday: 310000,
		calendar.Thursday:  300000,
		calendar.Friday:    290000,
		calendar.Saturday:  290000,
		calendar.Sunday:    290000,
	}
}

const (
	defaultPaydayThreshold  = 290000
	defaultDueDateThreshold = 290000
)

// Service bank names of the registered partners.
const (
	ServiceBankETap        = "eTap"
	ServiceBankBrinks      = "Brinks via BPI"
	ServiceBankBPIInternal = "BPI Internal"
	ServiceBankApeiros     = "Apeiros"
)

// BuiltInProfiles returns the current partner roster. Environment and chat
// routing are filled in by the caller from configuration.
func BuiltInProfiles() []*Profile {
	return []*Profile{
		{
			ServiceBank:      ServiceBankETap,
			Thresholds:       defaultThresholds(),
			PaydayThreshold:  defaultPaydayThreshold,
			DueDateThreshold: defaultDueDateThreshold,
			PairedKiosks:     []string{"PLDT BANTAY", "SMART VIGAN"},
			FixedSchedules: map[string][]time.Weekday{
				"PLDT ROBINSONS DUMAGUETE": {time.Monday, time.Wednesday, time.Saturday},
				"SMART SM BACOLOD 1":       {time.Tuesday, time.Saturday},
				"SMART SM BACOLOD 2":       {time.Tuesday, time.Saturday},
				"SMART SM BACOLOD 3":       {time.Tuesday, time.Saturday},
				"PLDT ILIGAN":              {time.Monday, time.Wednesday, time.Friday},
				"SMART GAISANO MALL OZAMIZ": {time.Friday},
			},
		},
		{
			ServiceBank:      ServiceBankBrinks,
			Thresholds:       defaultThresholds(),
			PaydayThreshold:  defaultPaydayThreshold,
			DueDateThreshold: defaultDueDateThreshold,
			SaturdayCap:      4,
			SortByAmount:     true,
		},
		{
			ServiceBank:      ServiceBankBPIInternal,
			Thresholds:       defaultThresholds(),
			PaydayThreshold:  defaultPaydayThreshold,
			DueDateThreshold: defaultDueDateThreshold,
			SkipWeekends:     true,
		},
		{
			ServiceBank:      ServiceBankApeiros,
			Thresholds:       defaultThresholds(),
			PaydayThreshold:  defaultPaydayThreshold,
			DueDateThreshold: defaultDueDateThreshold,
			SkipWeekends:     true,
			PairedKiosks:     []string{"PLDT SANTIAGO", "SMART ROBINSONS SANTIAGO"},
		},
	}
}
