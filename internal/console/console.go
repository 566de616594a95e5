package console

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/abhishek622/interviewdesk/internal/api"
	"github.com/abhishek622/interviewdesk/internal/config"
	"github.com/abhishek622/interviewdesk/internal/dialog"
	"github.com/abhishek622/interviewdesk/internal/labels"
	"github.com/abhishek622/interviewdesk/internal/query"
	"github.com/abhishek622/interviewdesk/internal/session"
	"github.com/abhishek622/interviewdesk/internal/workflow"
	"github.com/abhishek622/interviewdesk/pkg/model"
	"go.uber.org/zap"
)

type View string

const (
	ViewDashboard  View = "dashboard"
	ViewInterviews View = "interviews"
	ViewStats      View = "stats"
)

const (
	msgLoadFailed     = "failed to load data"
	msgListFailed     = "failed to load interviews"
	msgCreated        = "interview registered"
	msgCreateFailed   = "failed to register interview"
	msgUpdated        = "interview updated"
	msgUpdateFailed   = "failed to update interview"
	msgDeleted        = "interview deleted"
	msgDeleteFailed   = "failed to delete interview"
	msgCompleted      = "interview completed"
	msgUploaded       = "recording uploaded"
	msgUploadFailed   = "upload failed"
	msgActionFailed   = "operation failed"
	msgDetailFailed   = "failed to load interview"
	msgLoggedOut      = "logged out"
	defaultNavigation = ViewDashboard
)

// Notifier shows transient messages to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

type Options struct {
	Config *config.Config
	Logger *zap.Logger
	// Store defaults to the backend named in the configuration.
	Store     session.Store
	Prompter  workflow.Prompter
	Notifier  Notifier
	Busy      query.Busy
	Transport http.RoundTripper
	// OnLogin is called with the login URL whenever the session ends.
	OnLogin func(loginURL string)
}

// Console is the application object: it owns the active view and exposes
// every user action.
type Console struct {
	cfg     *config.Config
	logger  *zap.Logger
	session *session.Manager
	client  *api.Client
	labels  *labels.Table
	notify  Notifier
	onLogin func(string)

	List      *query.Controller
	Dashboard *query.Dashboard
	Dialog    *dialog.Controller
	Gate      *workflow.Gate

	mu       sync.Mutex
	view     View
	profile  *model.Profile
	loginURL string
}

func New(opts Options) (*Console, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("console: config is required")
	}
	if opts.Prompter == nil {
		return nil, fmt.Errorf("console: prompter is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	notify := opts.Notifier
	if notify == nil {
		notify = nopNotifier{}
	}

	store := opts.Store
	if store == nil {
		s, err := session.NewStore(opts.Config)
		if err != nil {
			return nil, err
		}
		store = s
	}

	c := &Console{
		cfg:     opts.Config,
		logger:  logger,
		session: session.NewManager(store, logger),
		labels:  labels.For(opts.Config.UI.Lang),
		notify:  notify,
		onLogin: opts.OnLogin,
		view:    defaultNavigation,
	}

	client, err := api.New(api.Options{
		BaseURL:    opts.Config.API.BaseURL,
		LoginURL:   opts.Config.API.LoginURL,
		Timeout:    opts.Config.API.Timeout,
		Session:    c.session,
		Redirector: c,
		Logger:     logger,
		Transport:  opts.Transport,
	})
	if err != nil {
		return nil, err
	}
	c.client = client

	c.List = query.NewController(client, opts.Config.UI.PageSize, logger)
	c.Dashboard = query.NewDashboard(client, opts.Busy, logger)
	c.Dialog = dialog.NewController(client, c, opts.Prompter, logger)
	c.Gate = workflow.NewGate(client, opts.Prompter, logger)
	return c, nil
}

// Init restores the persisted session, makes sure an anti-forgery token is
// held and loads the dashboard.
func (c *Console) Init(ctx context.Context) error {
	st, err := c.session.Load(ctx)
	if err != nil {
		return err
	}
	c.client.Restore(st.Token, st.CSRFToken)

	c.mu.Lock()
	c.profile = st.Profile
	c.loginURL = ""
	c.mu.Unlock()

	if err := c.client.EnsureCSRF(ctx); err != nil {
		c.fail(err, msgLoadFailed)
		return err
	}
	return c.Navigate(ctx, ViewDashboard)
}

// Navigate switches view. The dashboard reloads its data; the interviews
// view refreshes the management list.
func (c *Console) Navigate(ctx context.Context, v View) error {
	switch v {
	case ViewDashboard, ViewInterviews, ViewStats:
	default:
		return fmt.Errorf("unknown view %q", v)
	}

	c.mu.Lock()
	c.view = v
	c.mu.Unlock()

	switch v {
	case ViewDashboard:
		if err := c.Dashboard.Load(ctx); err != nil {
			c.fail(err, msgLoadFailed)
			return err
		}
	case ViewInterviews:
		if err := c.List.Refresh(ctx); err != nil {
			c.fail(err, msgListFailed)
			return err
		}
	}
	return nil
}

func (c *Console) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func (c *Console) Labels() *labels.Table {
	return c.labels
}

func (c *Console) Session() *session.Manager {
	return c.session
}

func (c *Console) Client() *api.Client {
	return c.client
}

func (c *Console) Profile() *model.Profile {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.profile == nil {
		return nil
	}
	p := *c.profile
	return &p
}

// UserName is the greeting name, "user" when no profile is stored.
func (c *Console) UserName() string {
	return c.Profile().DisplayName()
}

// LoginRequired reports whether the session ended and where to sign in.
func (c *Console) LoginRequired() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loginURL, c.loginURL != ""
}

// RedirectToLogin is invoked by the API client after it has cleared the
// session.
func (c *Console) RedirectToLogin(loginURL string) {
	c.mu.Lock()
	c.loginURL = loginURL
	c.profile = nil
	c.mu.Unlock()

	c.logger.Sugar().Infow("login required", "login_url", loginURL)
	if c.onLogin != nil {
		c.onLogin(loginURL)
	}
}

func (c *Console) RefreshDashboard(ctx context.Context) error {
	return c.Dashboard.Load(ctx)
}

func (c *Console) RefreshList(ctx context.Context) error {
	return c.List.Refresh(ctx)
}

func (c *Console) ListActive() bool {
	return c.View() == ViewInterviews
}

func (c *Console) fail(err error, fallback string) {
	c.notify.Error(api.UserMessage(err, fallback))
}

// reload refreshes whatever the current view shows after a workflow action.
func (c *Console) reload(ctx context.Context) {
	if err := c.Dashboard.Load(ctx); err != nil {
		c.logger.Sugar().Warnw("dashboard reload failed", "err", err)
	}
	if c.ListActive() {
		if err := c.List.Refresh(ctx); err != nil {
			c.logger.Sugar().Warnw("list reload failed", "err", err)
		}
	}
}
