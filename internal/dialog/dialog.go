package dialog

import (
	"context"
	"errors"
	"sync"

	"github.com/abhishek622/interviewdesk/internal/validate"
	"github.com/abhishek622/interviewdesk/internal/workflow"
	"github.com/abhishek622/interviewdesk/pkg/model"
	"go.uber.org/zap"
)

type Mode int

const (
	ModeNone Mode = iota
	ModeCreate
	ModeDetail
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeDetail:
		return "detail"
	case ModeEdit:
		return "edit"
	default:
		return "none"
	}
}

var ErrNotEditing = errors.New("no interview is being edited")

type API interface {
	CreateInterview(ctx context.Context, req model.CreateInterviewReq) (*model.Interview, error)
	GetInterview(ctx context.Context, id int64) (*model.Interview, error)
	UpdateInterview(ctx context.Context, id int64, patch model.PatchInterviewRequest) (*model.Interview, error)
	DeleteInterview(ctx context.Context, id int64) error
}

// Refresher reloads views after a successful write.
type Refresher interface {
	RefreshDashboard(ctx context.Context) error
	RefreshList(ctx context.Context) error
	ListActive() bool
}

// Controller owns the create, detail and edit drafts. Only one dialog is
// open at a time.
type Controller struct {
	api     API
	refresh Refresher
	prompt  workflow.Prompter
	logger  *zap.Logger

	mu       sync.Mutex
	mode     Mode
	draft    model.CreateDraft
	detail   *model.Interview
	original model.Interview
	edit     model.Interview
}

func NewController(api API, refresh Refresher, prompt workflow.Prompter, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		api:     api,
		refresh: refresh,
		prompt:  prompt,
		logger:  logger,
		draft:   model.NewCreateDraft(),
	}
}

func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Close hides the open dialog. The create draft survives until a create
// succeeds.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = ModeNone
	c.detail = nil
}

func (c *Controller) OpenCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = ModeCreate
}

func (c *Controller) Draft() model.CreateDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *Controller) UpdateDraft(fn func(d *model.CreateDraft)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.draft)
}

// SubmitCreate validates the draft and creates the interview. On success the
// dialog closes, the draft resets and the views reload.
func (c *Controller) SubmitCreate(ctx context.Context) (*model.Interview, error) {
	req, err := validate.CreatePayload(c.Draft())
	if err != nil {
		return nil, err
	}

	created, err := c.api.CreateInterview(ctx, req)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.mode = ModeNone
	c.draft = model.NewCreateDraft()
	c.mu.Unlock()

	c.logger.Sugar().Infow("interview created", "id", created.ID)
	if err := c.refresh.RefreshDashboard(ctx); err != nil {
		c.logger.Sugar().Warnw("dashboard refresh after create failed", "err", err)
	}
	if c.refresh.ListActive() {
		if err := c.refresh.RefreshList(ctx); err != nil {
			c.logger.Sugar().Warnw("list refresh after create failed", "err", err)
		}
	}
	return created, nil
}

// OpenDetail fetches the interview and shows it read-only.
func (c *Controller) OpenDetail(ctx context.Context, id int64) (*model.Interview, error) {
	rec, err := c.api.GetInterview(ctx, id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = ModeDetail
	c.detail = rec
	out := *rec
	return &out, nil
}

func (c *Controller) Detail() *model.Interview {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.detail == nil {
		return nil
	}
	out := *c.detail
	return &out
}

// OpenEdit starts editing a copy of a list row.
func (c *Controller) OpenEdit(row model.Interview) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = ModeEdit
	c.original = copyRow(row)
	c.edit = copyRow(row)
}

func (c *Controller) EditDraft() model.Interview {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyRow(c.edit)
}

func (c *Controller) UpdateEdit(fn func(r *model.Interview)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.edit)
}

// SaveEdit sends the changed editable fields. An unchanged draft closes
// without a request.
func (c *Controller) SaveEdit(ctx context.Context) (*model.Interview, error) {
	c.mu.Lock()
	if c.mode != ModeEdit {
		c.mu.Unlock()
		return nil, ErrNotEditing
	}
	id := c.original.ID
	patch := Diff(c.original, c.edit)
	c.mu.Unlock()

	if patch.Empty() {
		c.Close()
		return nil, nil
	}
	if err := validate.Patch(patch); err != nil {
		return nil, err
	}

	updated, err := c.api.UpdateInterview(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	c.Close()
	if err := c.refresh.RefreshList(ctx); err != nil {
		c.logger.Sugar().Warnw("list refresh after edit failed", "err", err)
	}
	return updated, nil
}

// Delete removes the interview once the user confirms. It reports false with
// a nil error on cancel.
func (c *Controller) Delete(ctx context.Context, id int64) (bool, error) {
	answer := c.prompt.Confirm(ctx, "Confirm deletion", "Delete this interview? This cannot be undone.")
	if answer.Cancelled() {
		return false, nil
	}

	if err := c.api.DeleteInterview(ctx, id); err != nil {
		return false, err
	}
	c.logger.Sugar().Infow("interview deleted", "id", id)

	if err := c.refresh.RefreshList(ctx); err != nil {
		c.logger.Sugar().Warnw("list refresh after delete failed", "err", err)
	}
	if err := c.refresh.RefreshDashboard(ctx); err != nil {
		c.logger.Sugar().Warnw("dashboard refresh after delete failed", "err", err)
	}
	return true, nil
}

// Diff returns a patch holding the editable fields that differ.
func Diff(orig, edited model.Interview) model.PatchInterviewRequest {
	var p model.PatchInterviewRequest
	if edited.Status != orig.Status {
		s := edited.Status
		p.Status = &s
	}
	if edited.Result != orig.Result {
		r := edited.Result
		p.Result = &r
	}
	if !sameScore(orig.Score, edited.Score) && edited.Score != nil {
		s := *edited.Score
		p.Score = &s
	}
	if edited.Feedback != orig.Feedback {
		f := edited.Feedback
		p.Feedback = &f
	}
	return p
}

func sameScore(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func copyRow(r model.Interview) model.Interview {
	if r.Score != nil {
		s := *r.Score
		r.Score = &s
	}
	return r
}
