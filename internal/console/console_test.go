package console

import (
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/abhishek622/interviewdesk/internal/api"
	"github.com/abhishek622/interviewdesk/internal/config"
	"github.com/abhishek622/interviewdesk/internal/handler"
	"github.com/abhishek622/interviewdesk/internal/labels"
	"github.com/abhishek622/interviewdesk/internal/repository"
	"github.com/abhishek622/interviewdesk/internal/session"
	"github.com/abhishek622/interviewdesk/internal/workflow"
	"github.com/abhishek622/interviewdesk/pkg/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notes struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *notes) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *notes) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func (n *notes) lastError() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.errors) == 0 {
		return ""
	}
	return n.errors[len(n.errors)-1]
}

type stubPrompter struct {
	confirm   workflow.Confirmation[struct{}]
	recording workflow.Confirmation[workflow.Recording]
}

func (s *stubPrompter) Confirm(context.Context, string, string) workflow.Confirmation[struct{}] {
	return s.confirm
}

func (s *stubPrompter) ChooseRecording(context.Context, string) workflow.Confirmation[workflow.Recording] {
	return s.recording
}

type fixture struct {
	console *Console
	handler *handler.Handler
	store   session.Store
	notes   *notes
	prompt  *stubPrompter
	token   string

	mu     sync.Mutex
	logins []string
}

func (f *fixture) loginCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.logins...)
}

func newFixture(t *testing.T, signedIn bool) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	user := &model.Profile{ID: 1, Username: "alice"}
	repo := repository.NewRepository(nil)
	require.NoError(t, repo.Seed(ctx, user))
	h := handler.New(nil, repo, nil, handler.Options{})
	srv := httptest.NewServer(h.Router())
	t.Cleanup(srv.Close)

	f := &fixture{
		handler: h,
		store:   session.NewFileStore(filepath.Join(t.TempDir(), "session.json")),
		notes:   &notes{},
		prompt: &stubPrompter{
			confirm:   workflow.Confirmed(struct{}{}),
			recording: workflow.Cancelled[workflow.Recording](),
		},
	}
	if signedIn {
		f.token = h.Sessions.Issue(user)
		m := session.NewManager(f.store, nil)
		require.NoError(t, m.SaveCookies(ctx, f.token, ""))
		require.NoError(t, m.SaveProfile(ctx, user))
	}

	cfg := &config.Config{
		Env: "test",
		API: config.APIConfig{
			BaseURL:  srv.URL + "/api/",
			Timeout:  5 * time.Second,
			LoginURL: "/login.html",
		},
		UI: config.UIConfig{Lang: "en", PageSize: 10},
	}
	c, err := New(Options{
		Config:   cfg,
		Store:    f.store,
		Prompter: f.prompt,
		Notifier: f.notes,
		OnLogin: func(u string) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.logins = append(f.logins, u)
		},
	})
	require.NoError(t, err)
	f.console = c
	return f
}

func fillDraft(d *model.CreateDraft) {
	d.CandidateName = "Li Lei"
	d.CandidatePhone = "13800000000"
	d.CompanyName = "Acme"
	d.PositionTitle = "Engineer"
	d.ScheduledTime = "2030-01-01T10:00:00"
}

func TestNew_RequiresConfigAndPrompter(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
	_, err = New(Options{Config: &config.Config{}})
	assert.Error(t, err)
}

func TestInit_LoadsDashboard(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	require.NoError(t, f.console.Init(ctx))

	assert.Equal(t, ViewDashboard, f.console.View())
	assert.Equal(t, "alice", f.console.UserName())
	assert.Len(t, f.console.Dashboard.Records(), 4)
	assert.Equal(t, 4, f.console.Dashboard.Stats().TotalCount)
	assert.Empty(t, f.notes.errors)

	st, err := f.console.Session().Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, f.token, st.Token)
	assert.NotEmpty(t, st.CSRFToken)
}

func TestInit_WithoutSessionRedirects(t *testing.T) {
	f := newFixture(t, false)

	err := f.console.Init(context.Background())

	var ae *api.AuthError
	require.True(t, errors.As(err, &ae), "got %v", err)
	assert.NotEmpty(t, f.loginCalls())
	assert.Equal(t, "/login.html", f.loginCalls()[0])
	url, required := f.console.LoginRequired()
	assert.True(t, required)
	assert.Equal(t, "/login.html", url)
	assert.Equal(t, api.MsgLoginRequired, f.notes.lastError())
	assert.Equal(t, "user", f.console.UserName())
}

func TestNavigate(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	require.NoError(t, f.console.Init(ctx))

	require.NoError(t, f.console.Navigate(ctx, ViewInterviews))
	assert.True(t, f.console.ListActive())
	assert.Equal(t, 4, f.console.List.State().Pagination.Total)

	require.NoError(t, f.console.Navigate(ctx, ViewStats))
	assert.False(t, f.console.ListActive())

	assert.Error(t, f.console.Navigate(ctx, View("admin")))
	assert.Equal(t, ViewStats, f.console.View())
}

func TestSetFilter(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	require.NoError(t, f.console.Init(ctx))
	require.NoError(t, f.console.Navigate(ctx, ViewInterviews))

	require.NoError(t, f.console.SetFilter(ctx, model.Filter{Status: "completed"}))
	st := f.console.List.State()
	require.Len(t, st.Records, 1)
	assert.Equal(t, model.StatusCompleted, st.Records[0].Status)
	assert.Equal(t, 1, st.Pagination.CurrentPage)
}

func TestCreate_RefreshesActiveList(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	require.NoError(t, f.console.Init(ctx))
	require.NoError(t, f.console.Navigate(ctx, ViewInterviews))

	f.console.OpenCreate()
	f.console.Dialog.UpdateDraft(fillDraft)
	created, err := f.console.SubmitCreate(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Li Lei", created.CandidateName)
	assert.Equal(t, 5, f.console.List.State().Pagination.Total)
	assert.Len(t, f.console.Dashboard.Records(), 5)
	assert.Contains(t, f.notes.successes, msgCreated)
}

func TestCreate_ValidationNotifies(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	require.NoError(t, f.console.Init(ctx))

	f.console.OpenCreate()
	_, err := f.console.SubmitCreate(ctx)
	assert.Error(t, err)
	assert.Equal(t, "please enter the candidate name", f.notes.lastError())
}

func TestCompleteNeedsRecording(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	require.NoError(t, f.console.Init(ctx))

	f.console.OpenCreate()
	f.console.Dialog.UpdateDraft(fillDraft)
	created, err := f.console.SubmitCreate(ctx)
	require.NoError(t, err)

	done, err := f.console.Complete(ctx, created.ID)
	assert.Error(t, err)
	assert.False(t, done)
	assert.Equal(t, repository.ErrRecordingRequired.Error(), f.notes.lastError())

	// nothing chosen: no upload
	done, err = f.console.UploadRecording(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, done)

	f.prompt.recording = workflow.Confirmed(workflow.Recording{
		Name: "call.wav",
		Body: strings.NewReader("RIFF\x24\x00\x00\x00WAVEfmt " + strings.Repeat("\x00", 32)),
	})
	done, err = f.console.UploadRecording(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, done)

	done, err = f.console.Complete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, done)

	rec, err := f.console.ShowDetail(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, rec.Status)
	assert.True(t, rec.RecordingUploaded)

	row := f.console.Present(*rec)
	assert.False(t, row.CanUpload)
	assert.False(t, row.CanComplete)
	assert.Equal(t, "Completed", row.StatusLabel)
	assert.Equal(t, labels.TierSuccess, row.StatusTier)
}

func TestEditAndDelete(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	require.NoError(t, f.console.Init(ctx))
	require.NoError(t, f.console.Navigate(ctx, ViewInterviews))

	row := f.console.List.State().Records[0]
	f.console.OpenEdit(row)
	f.console.Dialog.UpdateEdit(func(r *model.Interview) { r.Feedback = "strong candidate" })
	updated, err := f.console.SaveEdit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "strong candidate", updated.Feedback)

	f.prompt.confirm = workflow.Cancelled[struct{}]()
	done, err := f.console.Delete(ctx, row.ID)
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, 4, f.console.List.State().Pagination.Total)

	f.prompt.confirm = workflow.Confirmed(struct{}{})
	done, err = f.console.Delete(ctx, row.ID)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, 3, f.console.List.State().Pagination.Total)
}

func TestLogout(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	require.NoError(t, f.console.Init(ctx))

	f.console.Logout(ctx)

	st, err := f.console.Session().Load(ctx)
	require.NoError(t, err)
	assert.False(t, st.Authenticated())
	assert.Nil(t, st.Profile)
	assert.Equal(t, []string{"/login.html"}, f.loginCalls())
	_, ok := f.handler.Sessions.Lookup(f.token)
	assert.False(t, ok)
}

func TestUpcomingAndMine(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	require.NoError(t, f.console.Init(ctx))

	mine, err := f.console.Mine(ctx, "completed")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	upcoming, err := f.console.Upcoming(ctx)
	require.NoError(t, err)
	for _, r := range upcoming {
		assert.Contains(t, []model.Status{model.StatusScheduled, model.StatusInProgress}, r.Status)
	}
}
