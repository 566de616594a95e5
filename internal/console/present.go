package console

import (
	"github.com/abhishek622/interviewdesk/internal/labels"
	"github.com/abhishek622/interviewdesk/internal/workflow"
	"github.com/abhishek622/interviewdesk/pkg/model"
)

// Row is an interview with its display strings and permitted actions.
type Row struct {
	model.Interview
	StatusLabel string
	StatusTier  labels.Tier
	ResultLabel string
	ResultTier  labels.Tier
	MethodLabel string
	RoundLabel  string
	When        string
	CanUpload   bool
	CanComplete bool
	CanEdit     bool
	CanDelete   bool
}

func (c *Console) Present(r model.Interview) Row {
	t := c.labels
	return Row{
		Interview:   r,
		StatusLabel: t.StatusLabel(string(r.Status)),
		StatusTier:  labels.StatusTier(string(r.Status)),
		ResultLabel: t.ResultLabel(string(r.Result)),
		ResultTier:  labels.StatusTier(string(r.Result)),
		MethodLabel: t.MethodLabel(string(r.InterviewMethod)),
		RoundLabel:  t.RoundLabel(string(r.InterviewRound)),
		When:        t.FormatDateTime(r.ScheduledTime),
		CanUpload:   workflow.CanUploadRecording(r),
		CanComplete: workflow.CanComplete(r),
		CanEdit:     workflow.CanEdit(r),
		CanDelete:   workflow.CanDelete(r),
	}
}

func (c *Console) PresentAll(list []model.Interview) []Row {
	rows := make([]Row, 0, len(list))
	for _, r := range list {
		rows = append(rows, c.Present(r))
	}
	return rows
}
