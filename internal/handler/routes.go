package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Router builds the sandbox API. Paths keep their trailing slashes so they
// match the console's requests verbatim.
func (h *Handler) Router() http.Handler {
	registerJSONTagNames()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(h.RequestLogger())
	r.HandleMethodNotAllowed = true
	r.NoMethod(methodNotAllowed)

	r.GET("/api/csrf/", h.CSRFToken)
	r.POST("/api-auth/logout/", h.CSRFProtect(), h.Logout)

	api := r.Group("/api")
	api.Use(h.SessionAuth(), h.CSRFProtect())
	{
		api.GET("/dashboard/stats/", h.DashboardStats)

		api.GET("/interviews/", h.ListInterviews)
		api.POST("/interviews/", h.CreateInterview)
		api.GET("/interviews/upcoming_interviews/", h.UpcomingInterviews)
		api.GET("/interviews/my_interviews/", h.MyInterviews)
		api.GET("/interviews/:id/", h.GetInterview)
		api.PATCH("/interviews/:id/", h.PatchInterview)
		api.DELETE("/interviews/:id/", h.DeleteInterview)
		api.POST("/interviews/:id/upload_recording/", h.UploadRecording)
		api.POST("/interviews/:id/complete_interview/", h.CompleteInterview)
	}

	return r
}
