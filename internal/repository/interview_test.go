package repository

import (
	"context"
	"testing"
	"time"

	"github.com/abhishek622/interviewdesk/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday
var fixedNow = time.Date(2024, 5, 15, 9, 0, 0, 0, time.Local)

func newRepo(t *testing.T) *Repository {
	t.Helper()
	return NewRepository(func() time.Time { return fixedNow })
}

func mustCreate(t *testing.T, r *Repository, in model.Interview) *model.Interview {
	t.Helper()
	rec, err := r.CreateInterview(context.Background(), &in)
	require.NoError(t, err)
	return rec
}

func TestCreateInterview_Defaults(t *testing.T) {
	r := newRepo(t)
	rec := mustCreate(t, r, model.Interview{CandidateName: "A", ScheduledTime: "2024-05-15T10:00:00"})

	assert.Equal(t, int64(1), rec.ID)
	assert.Equal(t, model.StatusScheduled, rec.Status)
	assert.Equal(t, model.ResultPending, rec.Result)
	assert.Equal(t, model.DefaultDuration, rec.Duration)
	require.NotNil(t, rec.CreatedTime)
}

func TestListInterviews_Filters(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	mustCreate(t, r, model.Interview{CandidateName: "Alice", CompanyName: "Acme", ScheduledTime: "2024-05-10T10:00:00"})
	mustCreate(t, r, model.Interview{CandidateName: "Bob", CompanyName: "Globex", ScheduledTime: "2024-05-20T10:00:00", Status: model.StatusCompleted})
	mustCreate(t, r, model.Interview{CandidateName: "Carol", CompanyName: "acme labs", ScheduledTime: "2024-06-01T10:00:00"})

	tests := []struct {
		name  string
		f     ListFilter
		names []string
	}{
		{name: "all, latest first", f: ListFilter{}, names: []string{"Carol", "Bob", "Alice"}},
		{name: "status", f: ListFilter{Status: "completed"}, names: []string{"Bob"}},
		{name: "company contains", f: ListFilter{Company: "ACME"}, names: []string{"Carol", "Alice"}},
		{name: "candidate", f: ListFilter{CandidateName: "bo"}, names: []string{"Bob"}},
		{name: "date range", f: ListFilter{DateFrom: "2024-05-01", DateTo: "2024-05-31"}, names: []string{"Bob", "Alice"}},
		{name: "half range ignored", f: ListFilter{DateFrom: "2024-05-01"}, names: []string{"Carol", "Bob", "Alice"}},
		{name: "page 2", f: ListFilter{Page: 2, PageSize: 2}, names: []string{"Alice"}},
		{name: "page past end", f: ListFilter{Page: 5, PageSize: 2}, names: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ListInterviews(ctx, tt.f)
			require.NoError(t, err)
			names := make([]string, 0, len(got))
			for _, g := range got {
				names = append(names, g.CandidateName)
			}
			assert.Equal(t, tt.names, names)
		})
	}
}

func TestCompleteInterview_RequiresRecording(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	rec := mustCreate(t, r, model.Interview{CandidateName: "A", ScheduledTime: "2024-05-15T10:00:00"})

	require.ErrorIs(t, r.CompleteInterview(ctx, rec.ID), ErrRecordingRequired)

	_, err := r.AttachRecording(ctx, rec.ID, RecordingMeta{Filename: "a.mp3", ContentType: "audio/mpeg", Size: 10})
	require.NoError(t, err)
	require.NoError(t, r.CompleteInterview(ctx, rec.ID))

	got, err := r.GetInterviewByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, got.Status)
	assert.True(t, got.RecordingUploaded)
	require.NotNil(t, got.Recording)
	assert.Equal(t, "/media/interview_recordings/2024/05/15/a.mp3", *got.Recording)
	require.NotNil(t, got.CompletedTime)

	require.ErrorIs(t, r.CompleteInterview(ctx, 99), ErrNotFound)
}

func TestUpdateInterview_Partial(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	rec := mustCreate(t, r, model.Interview{CandidateName: "A", Feedback: "keep"})

	got, err := r.UpdateInterview(ctx, rec.ID, map[string]interface{}{"score": 90, "ignored": "x"})
	require.NoError(t, err)
	require.NotNil(t, got.Score)
	assert.Equal(t, 90, *got.Score)
	assert.Equal(t, "keep", got.Feedback)

	_, err = r.UpdateInterview(ctx, 42, map[string]interface{}{"score": 1})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteInterview(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	rec := mustCreate(t, r, model.Interview{CandidateName: "A"})

	require.NoError(t, r.DeleteInterview(ctx, rec.ID))
	require.ErrorIs(t, r.DeleteInterview(ctx, rec.ID), ErrNotFound)
}

func TestUpcoming(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	mustCreate(t, r, model.Interview{CandidateName: "past", ScheduledTime: "2024-05-14T10:00:00"})
	mustCreate(t, r, model.Interview{CandidateName: "later", ScheduledTime: "2024-05-18T10:00:00"})
	mustCreate(t, r, model.Interview{CandidateName: "soon", ScheduledTime: "2024-05-15T11:00:00"})
	mustCreate(t, r, model.Interview{CandidateName: "cancelled", ScheduledTime: "2024-05-16T11:00:00", Status: model.StatusCancelled})

	got, err := r.Upcoming(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "soon", got[0].CandidateName)
	assert.Equal(t, "later", got[1].CandidateName)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	mustCreate(t, r, model.Interview{ScheduledTime: "2024-05-15T10:00:00", Result: model.ResultPassed})
	mustCreate(t, r, model.Interview{ScheduledTime: "2024-05-13T10:00:00", Status: model.StatusCompleted, Result: model.ResultRejected})
	mustCreate(t, r, model.Interview{ScheduledTime: "2024-05-02T10:00:00", Status: model.StatusCompleted, Result: model.ResultOffer})
	mustCreate(t, r, model.Interview{ScheduledTime: "2024-04-30T10:00:00", Status: "archived"})

	s := r.Stats(ctx)
	assert.Equal(t, 1, s.TodayCount)
	assert.Equal(t, 2, s.WeekCount)
	assert.Equal(t, 3, s.MonthCount)
	assert.Equal(t, 4, s.TotalCount)
	assert.Equal(t, 2, s.NeedRecording)
	assert.Equal(t, 66.7, s.PassRate)
	assert.Equal(t, []model.ListStats{
		{Status: "scheduled", Count: 1},
		{Status: "completed", Count: 2},
		{Status: "archived", Count: 1},
	}, s.StatusStats)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	require.NoError(t, r.Seed(ctx, &model.Profile{ID: 1, Username: "interviewer"}))

	all, err := r.ListInterviews(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, "interviewer", all[0].InterviewerInfo.Username)
}
