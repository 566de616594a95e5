package console

import (
	"context"

	"github.com/abhishek622/interviewdesk/pkg/model"
)

func (c *Console) OpenCreate() {
	c.Dialog.OpenCreate()
}

// SubmitCreate registers the interview described by the create draft.
func (c *Console) SubmitCreate(ctx context.Context) (*model.Interview, error) {
	created, err := c.Dialog.SubmitCreate(ctx)
	if err != nil {
		c.fail(err, msgCreateFailed)
		return nil, err
	}
	c.notify.Success(msgCreated)
	return created, nil
}

func (c *Console) ShowDetail(ctx context.Context, id int64) (*model.Interview, error) {
	rec, err := c.Dialog.OpenDetail(ctx, id)
	if err != nil {
		c.fail(err, msgDetailFailed)
		return nil, err
	}
	return rec, nil
}

func (c *Console) OpenEdit(row model.Interview) {
	c.Dialog.OpenEdit(row)
}

func (c *Console) SaveEdit(ctx context.Context) (*model.Interview, error) {
	updated, err := c.Dialog.SaveEdit(ctx)
	if err != nil {
		c.fail(err, msgUpdateFailed)
		return nil, err
	}
	if updated != nil {
		c.notify.Success(msgUpdated)
	}
	return updated, nil
}

func (c *Console) Delete(ctx context.Context, id int64) (bool, error) {
	done, err := c.Dialog.Delete(ctx, id)
	if err != nil {
		c.fail(err, msgDeleteFailed)
		return false, err
	}
	if done {
		c.notify.Success(msgDeleted)
	}
	return done, nil
}

// Complete confirms and completes the interview. Cancelling does nothing.
func (c *Console) Complete(ctx context.Context, id int64) (bool, error) {
	done, err := c.Gate.Complete(ctx, id)
	if err != nil {
		c.fail(err, msgActionFailed)
		return false, err
	}
	if done {
		c.notify.Success(msgCompleted)
		c.reload(ctx)
	}
	return done, nil
}

// UploadRecording asks for a file and uploads it. Cancelling does nothing.
func (c *Console) UploadRecording(ctx context.Context, id int64) (bool, error) {
	done, err := c.Gate.UploadRecording(ctx, id)
	if err != nil {
		c.fail(err, msgUploadFailed)
		return false, err
	}
	if done {
		c.notify.Success(msgUploaded)
		c.reload(ctx)
	}
	return done, nil
}

func (c *Console) SetFilter(ctx context.Context, f model.Filter) error {
	if err := c.List.SetFilter(ctx, f); err != nil {
		c.fail(err, msgListFailed)
		return err
	}
	return nil
}

func (c *Console) SetPage(ctx context.Context, page int) error {
	if err := c.List.SetPage(ctx, page); err != nil {
		c.fail(err, msgListFailed)
		return err
	}
	return nil
}

func (c *Console) SetPageSize(ctx context.Context, size int) error {
	if err := c.List.SetPageSize(ctx, size); err != nil {
		c.fail(err, msgListFailed)
		return err
	}
	return nil
}

func (c *Console) SetSort(ctx context.Context, s model.Sort) error {
	if err := c.List.SetSort(ctx, s); err != nil {
		c.fail(err, msgListFailed)
		return err
	}
	return nil
}

func (c *Console) Upcoming(ctx context.Context) ([]model.Interview, error) {
	list, err := c.client.UpcomingInterviews(ctx)
	if err != nil {
		c.fail(err, msgListFailed)
		return nil, err
	}
	return list, nil
}

func (c *Console) Mine(ctx context.Context, status string) ([]model.Interview, error) {
	list, err := c.client.MyInterviews(ctx, status)
	if err != nil {
		c.fail(err, msgListFailed)
		return nil, err
	}
	return list, nil
}

// Logout ends the session. The local session is gone afterwards whatever
// the server answered.
func (c *Console) Logout(ctx context.Context) {
	if err := c.client.Logout(ctx); err != nil {
		c.logger.Sugar().Warnw("logout error", "err", err)
	}
	c.notify.Success(msgLoggedOut)
}
