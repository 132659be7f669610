package domain

import "context"

// DailyPromise is a static devotional entry shown once per day.
// swagger:model DailyPromise
type DailyPromise struct {
	ID        string `json:"id" yaml:"id"`
	Reference string `json:"reference" yaml:"reference"`
	TextEn    string `json:"textEn" yaml:"text_en"`
	TextTa    string `json:"textTa" yaml:"text_ta"`
}

// DailyPromiseResult is the promise selected for one calendar date.
// Index is -1 when no promises are configured.
type DailyPromiseResult struct {
	ISODate string       `json:"isoDate"`
	Promise DailyPromise `json:"promise"`
	Index   int          `json:"index"`
}

// PromiseService resolves the daily promise for a calendar date in the site time zone.
type PromiseService interface {
	// ForDate accepts YYYY-MM-DD, or "" for today.
	ForDate(ctx context.Context, isoDate string) (DailyPromiseResult, error)
}
