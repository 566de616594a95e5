package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/abhishek622/interviewdesk/internal/repository"
	"github.com/abhishek622/interviewdesk/pkg/model"
	"github.com/abhishek622/interviewdesk/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	SessionCookie = "sessionid"
	CSRFCookie    = "csrftoken"
	CSRFHeader    = "X-CSRFToken"

	// RecordingField is the multipart field carrying an uploaded recording.
	RecordingField = "recording"

	upcomingLimit = 10
	maxPageSize   = 100
)

type Options struct {
	// RejectPastSchedules refuses interviews scheduled before the current time.
	RejectPastSchedules bool
}

// Handler serves the sandbox interview API.
type Handler struct {
	Logger     *zap.Logger
	Repository *repository.Repository
	Sessions   *Sessions
	Options    Options
}

func New(logger *zap.Logger, repo *repository.Repository, sessions *Sessions, opts Options) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sessions == nil {
		sessions = NewSessions()
	}
	return &Handler{
		Logger:     logger,
		Repository: repo,
		Sessions:   sessions,
		Options:    opts,
	}
}

// GetUserFromContext retrieves the current user from the gin context
func (h *Handler) GetUserFromContext(c *gin.Context) *model.Profile {
	contextUser, exists := c.Get("user")
	if !exists {
		return &model.Profile{}
	}

	user, ok := contextUser.(*model.Profile)
	if !ok {
		return &model.Profile{}
	}

	return user
}

// loadOwned resolves the :id parameter to an interview the current user may
// see. It writes the error response itself and reports false on failure.
func (h *Handler) loadOwned(c *gin.Context) (*model.Interview, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.NotFound(c, "")
		return nil, false
	}

	rec, err := h.Repository.GetInterviewByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "")
			return nil, false
		}
		h.Logger.Sugar().Errorw("failed to get interview", "id", id, "err", err)
		response.InternalError(c)
		return nil, false
	}

	if user := h.GetUserFromContext(c); !user.IsStaff {
		if rec.InterviewerInfo == nil || rec.InterviewerInfo.Username != user.Username {
			response.NotFound(c, "")
			return nil, false
		}
	}
	return rec, true
}

// interviewerScope limits non-staff users to their own interviews.
func (h *Handler) interviewerScope(c *gin.Context) string {
	user := h.GetUserFromContext(c)
	if user.IsStaff {
		return ""
	}
	return user.Username
}

func methodNotAllowed(c *gin.Context) {
	response.Detail(c, http.StatusMethodNotAllowed, "Method \""+c.Request.Method+"\" not allowed.")
}
