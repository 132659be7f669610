package content

import (
	"fmt"
	"time"

	"praisetabernacle/internal/domain"
)

// PlaceholderPromise is returned when no promises are configured.
var PlaceholderPromise = domain.DailyPromise{
	ID:        "placeholder",
	Reference: "",
	TextEn:    "",
	TextTa:    "",
}

// DailyPromiseForDate picks the promise for the calendar date of t observed in timeZone.
// The entry is promises[(dayOfYear-1) % len(promises)], so the same date always maps to the same entry.
func DailyPromiseForDate(t time.Time, timeZone string, promises []domain.DailyPromise) (domain.DailyPromiseResult, error) {
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return domain.DailyPromiseResult{}, fmt.Errorf("load time zone %q: %w", timeZone, err)
	}
	return DailyPromiseIn(t, loc, promises), nil
}

// DailyPromiseIn is DailyPromiseForDate with an already resolved location.
func DailyPromiseIn(t time.Time, loc *time.Location, promises []domain.DailyPromise) domain.DailyPromiseResult {
	local := t.In(loc)
	res := domain.DailyPromiseResult{ISODate: local.Format(domain.ISODateLayout), Index: -1, Promise: PlaceholderPromise}
	if len(promises) == 0 {
		return res
	}
	res.Index = (local.YearDay() - 1) % len(promises)
	res.Promise = promises[res.Index]
	return res
}
