// This file implements the Strategy Pattern for schedule recurrence.
// Each frequency has its own advancer that computes the next run time,
// so adding a frequency never touches the scheduling code.

package services

import (
	"time"

	"outgo/internal/core"
)

// NextRunAdvancer computes the run time that follows the given one for a
// single frequency.
type NextRunAdvancer interface {
	Next(from time.Time) time.Time
}

type (
	dailyAdvancer     struct{}
	weeklyAdvancer    struct{}
	monthlyAdvancer   struct{}
	quarterlyAdvancer struct{}
	yearlyAdvancer    struct{}
)

func (dailyAdvancer) Next(from time.Time) time.Time  { return from.AddDate(0, 0, 1) }
func (weeklyAdvancer) Next(from time.Time) time.Time { return from.AddDate(0, 0, 7) }

// Monthly and longer intervals use AddDate so a Jan 31 schedule lands on
// the normalized Go date (Mar 2/3) rather than panicking or stalling.
func (monthlyAdvancer) Next(from time.Time) time.Time   { return from.AddDate(0, 1, 0) }
func (quarterlyAdvancer) Next(from time.Time) time.Time { return from.AddDate(0, 3, 0) }
func (yearlyAdvancer) Next(from time.Time) time.Time    { return from.AddDate(1, 0, 0) }

var nextRunAdvancers = map[core.Frequency]NextRunAdvancer{
	core.Daily:     dailyAdvancer{},
	core.Weekly:    weeklyAdvancer{},
	core.Monthly:   monthlyAdvancer{},
	core.Quarterly: quarterlyAdvancer{},
	core.Yearly:    yearlyAdvancer{},
}

// NextRun advances from by one interval of the given frequency. The bool
// is false for frequencies without a registered advancer.
func NextRun(f core.Frequency, from time.Time) (time.Time, bool) {
	adv, ok := nextRunAdvancers[f]
	if !ok {
		return time.Time{}, false
	}
	return adv.Next(from), true
}
