package client

import (
	"context"

	"hrportal/api"
	"hrportal/pagination"
)

// HistoryPager backs both history UI modes - page numbers and "load more" -
// with one accumulated result set, so switching modes never drops data.
// Items accumulate contiguously from the start of the history.
type HistoryPager struct {
	client   *Client
	pageSize int
	items    []api.TimesheetListItem
	total    int64
	fetched  bool
}

func NewHistoryPager(c *Client, pageSize int) *HistoryPager {
	return &HistoryPager{client: c, pageSize: pageSize}
}

func (p *HistoryPager) Total() int64 { return p.total }

func (p *HistoryPager) PageSize() int { return p.pageSize }

// Loaded returns everything fetched so far - the load-more view.
func (p *HistoryPager) Loaded() []api.TimesheetListItem { return p.items }

// HasMore reports whether another LoadMore would fetch anything.
func (p *HistoryPager) HasMore() bool {
	return !p.fetched || int64(len(p.items)) < p.total
}

// LoadMore fetches the next window and appends it.
func (p *HistoryPager) LoadMore(ctx context.Context) ([]api.TimesheetListItem, error) {
	if p.fetched && int64(len(p.items)) >= p.total {
		return nil, nil
	}
	page, err := p.client.History(ctx, pagination.Params{Skip: len(p.items), Limit: p.pageSize})
	if err != nil {
		return nil, err
	}
	p.fetched = true
	p.total = page.TotalCount
	p.items = append(p.items, page.Items...)
	return page.Items, nil
}

// TotalPages is defined once the first fetch has reported a count.
func (p *HistoryPager) TotalPages() int {
	if p.pageSize == 0 {
		return 0
	}
	return int((p.total + int64(p.pageSize) - 1) / int64(p.pageSize))
}

// Page returns page n (1-based) for the page-number view, fetching forward
// as needed. Already-loaded items are served from the accumulated set.
func (p *HistoryPager) Page(ctx context.Context, n int) ([]api.TimesheetListItem, error) {
	if n < 1 {
		n = 1
	}
	end := n * p.pageSize
	for p.HasMore() && len(p.items) < end {
		if _, err := p.LoadMore(ctx); err != nil {
			return nil, err
		}
	}
	start := (n - 1) * p.pageSize
	if start >= len(p.items) {
		return []api.TimesheetListItem{}, nil
	}
	if end > len(p.items) {
		end = len(p.items)
	}
	return p.items[start:end], nil
}

// HasNext and HasPrevious describe page n in the page-number view.
func (p *HistoryPager) HasNext(n int) bool {
	return int64(n*p.pageSize) < p.total
}

func (p *HistoryPager) HasPrevious(n int) bool {
	return n > 1
}

// Reset drops the accumulated set, for refresh after a new submission.
func (p *HistoryPager) Reset() {
	p.items = nil
	p.total = 0
	p.fetched = false
}
