// internal/domain/collection/aggregator.go
package collection

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"kiosk_pickup_scheduler/internal/domain/calendar"
	"kiosk_pickup_scheduler/internal/domain/kiosk"
	"kiosk_pickup_scheduler/internal/domain/partner"

	"github.com/sirupsen/logrus"
)

// Aggregator turns one partner's kiosk snapshot into ordered, capacity-capped
// pickup request batches.
type Aggregator struct {
	evaluator *Evaluator
	logger    *logrus.Logger
}

func NewAggregator(evaluator *Evaluator, logger *logrus.Logger) *Aggregator {
	return &Aggregator{evaluator: evaluator, logger: logger}
}

// Aggregate evaluates every kiosk, drops the ones with an open request from a
// prior run, completes paired groups, sorts, and splits on the Saturday cap.
// The overflow batch is dated for the next working day after the target date.
func (a *Aggregator) Aggregate(
	kiosks []*kiosk.CollectionPoint,
	profile *partner.Profile,
	cal calendar.Context,
	alreadyRequested map[string]bool,
) []Batch {
	byName := make(map[string]*kiosk.CollectionPoint, len(kiosks))
	for _, cp := range kiosks {
		byName[cp.Name] = cp
	}

	subject := Subject(profile.ServiceBank, cal.Tomorrow)

	var requests []PickupRequest
	included := make(map[string]bool)
	pairQualified := false

	for _, cp := range kiosks {
		decision := a.evaluator.Evaluate(cp, profile, cal)
		if !decision.Include {
			continue
		}
		if alreadyRequested[cp.Name] {
			a.logger.WithFields(logrus.Fields{
				"kiosk":   cp.Name,
				"partner": profile.ServiceBank,
			}).Info("Skipping kiosk with an open request from a prior run.")
			continue
		}
		if included[cp.Name] {
			continue
		}
		if profile.IsPaired(cp.Name) {
			pairQualified = true
		}
		included[cp.Name] = true
		requests = append(requests, PickupRequest{
			DisplayName: displayName(cp.Name, cp.LastRemark, decision.Classification.Revisit),
			Kiosk:       cp.Name,
			Amount:      cp.CurrentAmount,
			Partner:     profile.ServiceBank,
			Subject:     subject,
			RawRemark:   cp.LastRemark,
		})
	}

	// A qualifying member of the paired group pulls in the whole group.
	if pairQualified {
		for _, name := range profile.PairedKiosks {
			if included[name] || alreadyRequested[name] {
				continue
			}
			var amount float64
			var rawRemark string
			if cp, ok := byName[name]; ok {
				amount = cp.CurrentAmount
				rawRemark = cp.LastRemark
			}
			included[name] = true
			requests = append(requests, PickupRequest{
				DisplayName: name,
				Kiosk:       name,
				Amount:      amount,
				Partner:     profile.ServiceBank,
				Subject:     subject,
				RawRemark:   rawRemark,
			})
		}
	}

	if len(requests) == 0 {
		return nil
	}

	sortRequests(requests, profile.SortByAmount)

	// The Saturday cap splits the batch; the remainder is not dropped but
	// re-dated for the next working day.
	if profile.SaturdayCap > 0 && cal.Tomorrow.Weekday() == time.Saturday && len(requests) > profile.SaturdayCap {
		rolloverDate := cal.Holidays.NextWorkingDay(cal.Tomorrow.AddDate(0, 0, 1))
		rollover := retag(requests[profile.SaturdayCap:], profile.ServiceBank, rolloverDate)
		a.logger.WithFields(logrus.Fields{
			"partner":       profile.ServiceBank,
			"cap":           profile.SaturdayCap,
			"rolled_over":   len(rollover.Requests),
			"rollover_date": rolloverDate.Format("2006-01-02"),
		}).Info("Saturday capacity cap reached; overflow rolled to next working day.")
		return []Batch{
			{TargetDate: cal.Tomorrow, Requests: requests[:profile.SaturdayCap]},
			rollover,
		}
	}

	return []Batch{{TargetDate: cal.Tomorrow, Requests: requests}}
}

// Subject builds the notification subject line for a target date.
func Subject(serviceBank string, targetDate time.Time) string {
	return fmt.Sprintf("%s DPU Request - %s", serviceBank, calendar.LongDate(targetDate))
}

func retag(requests []PickupRequest, serviceBank string, targetDate time.Time) Batch {
	subject := Subject(serviceBank, targetDate)
	out := make([]PickupRequest, len(requests))
	for i, r := range requests {
		r.Subject = subject
		out[i] = r
	}
	return Batch{TargetDate: targetDate, Requests: out}
}

// displayName annotates revisit kiosks with the raw remark in bold so the
// courier sees the operator's note.
func displayName(name, rawRemark string, revisit bool) string {
	if revisit && rawRemark != "" {
		return fmt.Sprintf("%s (<b>%s</b>)", name, rawRemark)
	}
	return name
}

// sortRequests orders by amount descending with NaN pushed last, or by
// case-insensitive kiosk name ascending.
func sortRequests(requests []PickupRequest, byAmount bool) {
	if byAmount {
		sort.SliceStable(requests, func(i, j int) bool {
			a, b := requests[i].Amount, requests[j].Amount
			switch {
			case math.IsNaN(a):
				return false
			case math.IsNaN(b):
				return true
			default:
				return a > b
			}
		})
		return
	}
	sort.SliceStable(requests, func(i, j int) bool {
		return strings.ToLower(requests[i].Kiosk) < strings.ToLower(requests[j].Kiosk)
	})
}
