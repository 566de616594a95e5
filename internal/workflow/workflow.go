package workflow

import (
	"context"
	"io"

	"github.com/abhishek622/interviewdesk/pkg/model"
	"go.uber.org/zap"
)

// CanUploadRecording is true for a completed interview still missing its
// recording.
func CanUploadRecording(r model.Interview) bool {
	return r.Status == model.StatusCompleted && !r.RecordingUploaded
}

func CanComplete(r model.Interview) bool {
	return r.Status != model.StatusCompleted
}

func CanEdit(model.Interview) bool { return true }

func CanDelete(model.Interview) bool { return true }

// Confirmation is the answer to a prompt: either a confirmed value or a
// cancellation. Cancelling is not an error.
type Confirmation[T any] struct {
	value     T
	confirmed bool
}

func Confirmed[T any](v T) Confirmation[T] {
	return Confirmation[T]{value: v, confirmed: true}
}

func Cancelled[T any]() Confirmation[T] {
	return Confirmation[T]{}
}

func (c Confirmation[T]) Value() (T, bool) {
	return c.value, c.confirmed
}

func (c Confirmation[T]) Cancelled() bool {
	return !c.confirmed
}

// Recording is a file chosen for upload. Close, when set, is called once the
// upload finishes.
type Recording struct {
	Name  string
	Body  io.Reader
	Close func() error
}

type Prompter interface {
	Confirm(ctx context.Context, title, message string) Confirmation[struct{}]
	ChooseRecording(ctx context.Context, title string) Confirmation[Recording]
}

type Actions interface {
	CompleteInterview(ctx context.Context, id int64) error
	UploadRecording(ctx context.Context, id int64, filename string, r io.Reader) error
}

// Gate runs the confirmation-gated actions.
type Gate struct {
	api    Actions
	prompt Prompter
	logger *zap.Logger
}

func NewGate(api Actions, prompt Prompter, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{api: api, prompt: prompt, logger: logger}
}

// Complete asks for confirmation and completes the interview. It reports
// false with a nil error when the user cancels.
func (g *Gate) Complete(ctx context.Context, id int64) (bool, error) {
	answer := g.prompt.Confirm(ctx, "Confirm completion", "Mark this interview as completed?")
	if answer.Cancelled() {
		return false, nil
	}
	if err := g.api.CompleteInterview(ctx, id); err != nil {
		return false, err
	}
	g.logger.Sugar().Infow("interview completed", "id", id)
	return true, nil
}

// UploadRecording asks for a file and uploads it. It reports false with a
// nil error when no file is chosen.
func (g *Gate) UploadRecording(ctx context.Context, id int64) (bool, error) {
	answer := g.prompt.ChooseRecording(ctx, "Upload recording")
	rec, ok := answer.Value()
	if !ok || rec.Body == nil {
		return false, nil
	}
	if rec.Close != nil {
		defer func() {
			if err := rec.Close(); err != nil {
				g.logger.Sugar().Warnw("failed to close recording", "name", rec.Name, "err", err)
			}
		}()
	}

	if err := g.api.UploadRecording(ctx, id, rec.Name, rec.Body); err != nil {
		return false, err
	}
	g.logger.Sugar().Infow("recording uploaded", "id", id, "name", rec.Name)
	return true, nil
}
