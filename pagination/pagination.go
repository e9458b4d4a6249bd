package pagination

import (
	"net/url"
	"strconv"

	"gorm.io/gorm"
)

const maxLimit = 100

// Params is the skip/limit window requested by a client. Both page-number
// and load-more UIs reduce to it.
type Params struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// FromQuery reads skip/limit from URL query values, falling back to
// defaultLimit and clamping nonsense.
func FromQuery(q url.Values, defaultLimit int) Params {
	p := Params{Limit: defaultLimit}
	if v, err := strconv.Atoi(q.Get("skip")); err == nil && v > 0 {
		p.Skip = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		p.Limit = v
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

// Page is the standard list envelope.
type Page[T any] struct {
	Items       []T   `json:"items"`
	TotalCount  int64 `json:"total_count"`
	Skip        int   `json:"skip"`
	Limit       int   `json:"limit"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// NewPage wraps an already-windowed item slice with its metadata.
func NewPage[T any](items []T, total int64, p Params) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:       items,
		TotalCount:  total,
		Skip:        p.Skip,
		Limit:       p.Limit,
		HasNext:     int64(p.Skip+len(items)) < total,
		HasPrevious: p.Skip > 0,
	}
}

// Find runs the count plus the offset/limit query for the envelope. The
// query must already carry its filters and ordering.
func Find[T any](query *gorm.DB, p Params) (Page[T], error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Page[T]{}, err
	}
	var items []T
	if err := query.Session(&gorm.Session{}).Offset(p.Skip).Limit(p.Limit).Find(&items).Error; err != nil {
		return Page[T]{}, err
	}
	return NewPage(items, total, p), nil
}
