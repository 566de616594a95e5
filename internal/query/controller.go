package query

import (
	"context"
	"net/url"
	"strconv"
	"sync"

	"github.com/abhishek622/interviewdesk/pkg/model"
	"go.uber.org/zap"
)

// Interviews is the slice of the API the list controller needs.
type Interviews interface {
	ListInterviews(ctx context.Context, params url.Values) ([]model.Interview, int, error)
}

// State is a copy of the controller state.
type State struct {
	Records    []model.Interview
	Filter     model.Filter
	Pagination model.Pagination
	Sort       model.Sort
}

// Controller owns the management list: filters, pagination, sort and the
// records of the current page.
type Controller struct {
	api    Interviews
	logger *zap.Logger

	mu      sync.Mutex
	filter  model.Filter
	page    model.Pagination
	sort    model.Sort
	records []model.Interview
}

func NewController(api Interviews, pageSize int, logger *zap.Logger) *Controller {
	if pageSize <= 0 {
		pageSize = model.DefaultPageSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		api:     api,
		logger:  logger,
		page:    model.Pagination{CurrentPage: model.DefaultPage, PageSize: pageSize},
		records: []model.Interview{},
	}
}

// BuildParams derives the list query. Page and size are always sent; text
// filters only when set; the date range only when both bounds are set.
// Interviewer and sort are held client-side and never sent.
func BuildParams(f model.Filter, p model.Pagination) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.CurrentPage))
	q.Set("page_size", strconv.Itoa(p.PageSize))
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Company != "" {
		q.Set("company", f.Company)
	}
	if f.Candidate != "" {
		q.Set("candidate_name", f.Candidate)
	}
	if f.DateRange.Complete() {
		q.Set("date_from", f.DateRange.Start)
		q.Set("date_to", f.DateRange.End)
	}
	return q
}

// Params is the query the next Refresh will send.
func (c *Controller) Params() url.Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	return BuildParams(c.filter, c.page)
}

// Refresh fetches the current page. On failure the records and total are
// left as they were.
func (c *Controller) Refresh(ctx context.Context) error {
	params := c.Params()

	records, total, err := c.api.ListInterviews(ctx, params)
	if err != nil {
		c.logger.Sugar().Warnw("refresh interview list failed", "query", params.Encode(), "err", err)
		return err
	}

	c.mu.Lock()
	c.records = records
	c.page.Total = total
	c.mu.Unlock()
	return nil
}

// SetFilter replaces the filter, returns to the first page and refreshes.
func (c *Controller) SetFilter(ctx context.Context, f model.Filter) error {
	c.mu.Lock()
	if f.DateRange != nil {
		dr := *f.DateRange
		f.DateRange = &dr
	}
	c.filter = f
	c.page.CurrentPage = model.DefaultPage
	c.mu.Unlock()
	return c.Refresh(ctx)
}

func (c *Controller) SetPage(ctx context.Context, page int) error {
	c.mu.Lock()
	c.page.CurrentPage = max(page, 1)
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// SetPageSize changes the page size and returns to the first page.
func (c *Controller) SetPageSize(ctx context.Context, size int) error {
	c.mu.Lock()
	if size > 0 {
		c.page.PageSize = size
	}
	c.page.CurrentPage = model.DefaultPage
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// SetSort records the sort order. The backend orders by schedule on its own,
// so the order is kept for display only.
func (c *Controller) SetSort(ctx context.Context, s model.Sort) error {
	c.mu.Lock()
	c.sort = s
	c.mu.Unlock()
	return c.Refresh(ctx)
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := State{
		Records:    append([]model.Interview(nil), c.records...),
		Filter:     c.filter,
		Pagination: c.page,
		Sort:       c.sort,
	}
	if c.filter.DateRange != nil {
		dr := *c.filter.DateRange
		st.Filter.DateRange = &dr
	}
	return st
}
