package query

import (
	"context"
	"sync"

	"github.com/abhishek622/interviewdesk/pkg/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type DashboardAPI interface {
	Interviews
	DashboardStats(ctx context.Context) (*model.DashboardStats, error)
}

// Busy is a loading indicator. End is called exactly once per Begin.
type Busy interface {
	Begin()
	End()
}

// Dashboard holds the counters and the unfiltered interview list shown on
// the landing view. Its state is independent of the management list.
type Dashboard struct {
	api    DashboardAPI
	busy   Busy
	logger *zap.Logger

	mu      sync.Mutex
	stats   model.DashboardStats
	records []model.Interview
}

func NewDashboard(api DashboardAPI, busy Busy, logger *zap.Logger) *Dashboard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dashboard{
		api:     api,
		busy:    busy,
		logger:  logger,
		stats:   model.DashboardStats{StatusStats: []model.ListStats{}},
		records: []model.Interview{},
	}
}

// Load fetches the stats and the full list in parallel. Nothing is replaced
// unless both succeed.
func (d *Dashboard) Load(ctx context.Context) error {
	if d.busy != nil {
		d.busy.Begin()
		defer d.busy.End()
	}

	var (
		stats   *model.DashboardStats
		records []model.Interview
	)
	// a failed fetch does not cancel its sibling
	var g errgroup.Group
	g.Go(func() error {
		s, err := d.api.DashboardStats(ctx)
		stats = s
		return err
	})
	g.Go(func() error {
		list, _, err := d.api.ListInterviews(ctx, nil)
		records = list
		return err
	})
	if err := g.Wait(); err != nil {
		d.logger.Sugar().Warnw("dashboard load failed", "err", err)
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.stats = *stats
	if d.stats.StatusStats == nil {
		d.stats.StatusStats = []model.ListStats{}
	}
	d.records = records
	return nil
}

func (d *Dashboard) Stats() model.DashboardStats {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.stats
	s.StatusStats = append([]model.ListStats(nil), d.stats.StatusStats...)
	return s
}

func (d *Dashboard) Records() []model.Interview {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]model.Interview(nil), d.records...)
}
