package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/abhishek622/interviewdesk/internal/repository"
	"github.com/abhishek622/interviewdesk/pkg"
	"github.com/abhishek622/interviewdesk/pkg/model"
	"github.com/abhishek622/interviewdesk/pkg/response"
	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateInterview(c *gin.Context) {
	var req model.CreateInterviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	fields := make(map[string][]string)
	required := []struct {
		name  string
		value *string
	}{
		{"candidate_name", &req.CandidateName},
		{"candidate_phone", &req.CandidatePhone},
		{"company_name", &req.CompanyName},
		{"position_title", &req.PositionTitle},
		{"scheduled_time", &req.ScheduledTime},
	}
	for _, f := range required {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			fields[f.name] = []string{msgBlank}
		}
	}

	if req.InterviewMethod == "" {
		req.InterviewMethod = model.MethodVideo
	}
	if !validMethod(req.InterviewMethod) {
		fields["interview_method"] = []string{choiceMessage(string(req.InterviewMethod))}
	}
	if req.InterviewRound == "" {
		req.InterviewRound = model.RoundFirst
	}
	if !validRound(req.InterviewRound) {
		fields["interview_round"] = []string{choiceMessage(string(req.InterviewRound))}
	}
	if req.Duration == 0 {
		req.Duration = model.DefaultDuration
	}
	if !validDuration(req.Duration) {
		fields["duration"] = []string{msgDuration}
	}

	scheduled, err := repository.ParseSchedule(req.ScheduledTime)
	if err != nil && fields["scheduled_time"] == nil {
		fields["scheduled_time"] = []string{msgDatetime}
	}
	if len(fields) > 0 {
		response.Fields(c, fields)
		return
	}

	if h.Options.RejectPastSchedules && scheduled.Before(h.Repository.Now()) {
		response.Fields(c, map[string][]string{"non_field_errors": {msgPastSchedule}})
		return
	}

	user := h.GetUserFromContext(c)
	rec, err := h.Repository.CreateInterview(c.Request.Context(), &model.Interview{
		CandidateName:       req.CandidateName,
		CandidatePhone:      req.CandidatePhone,
		CandidateEmail:      strings.TrimSpace(req.CandidateEmail),
		CompanyName:         req.CompanyName,
		PositionTitle:       req.PositionTitle,
		PositionDescription: req.PositionDescription,
		InterviewMethod:     req.InterviewMethod,
		InterviewRound:      req.InterviewRound,
		ScheduledTime:       scheduled.Format("2006-01-02T15:04:05"),
		Duration:            req.Duration,
		InterviewerNotes:    req.InterviewerNotes,
		InterviewerInfo:     user,
	})
	if err != nil {
		h.Logger.Sugar().Errorw("failed to create interview", "err", err)
		response.InternalError(c)
		return
	}

	h.Logger.Sugar().Infow("interview created", "id", rec.ID, "interviewer", user.Username)
	response.Created(c, rec)
}

func (h *Handler) ListInterviews(c *gin.Context) {
	var q model.ListInterviewQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.bindError(c, err)
		return
	}
	if q.PageSize > 0 {
		q.PageSize = pkg.Clamp(q.PageSize, 1, maxPageSize)
	}

	list, err := h.Repository.ListInterviews(c.Request.Context(), repository.ListFilter{
		Status:        q.Status,
		Company:       q.Company,
		CandidateName: q.CandidateName,
		DateFrom:      q.DateFrom,
		DateTo:        q.DateTo,
		Interviewer:   h.interviewerScope(c),
		Page:          q.Page,
		PageSize:      q.PageSize,
	})
	if err != nil {
		h.Logger.Sugar().Warnw("list interviews failed", "err", err)
		response.InternalError(c)
		return
	}

	response.OK(c, list)
}

func (h *Handler) GetInterview(c *gin.Context) {
	rec, ok := h.loadOwned(c)
	if !ok {
		return
	}
	response.OK(c, rec)
}

func (h *Handler) PatchInterview(c *gin.Context) {
	rec, ok := h.loadOwned(c)
	if !ok {
		return
	}

	var req model.PatchInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	fields := make(map[string][]string)
	if req.Status != nil && !validStatus(*req.Status) {
		fields["status"] = []string{choiceMessage(string(*req.Status))}
	}
	if req.Result != nil && !validResult(*req.Result) {
		fields["result"] = []string{choiceMessage(string(*req.Result))}
	}
	if len(fields) > 0 {
		response.Fields(c, fields)
		return
	}
	if req.Status != nil && *req.Status == model.StatusCompleted && !rec.RecordingUploaded {
		response.Fields(c, map[string][]string{"non_field_errors": {msgNeedRecording}})
		return
	}

	updates := make(map[string]interface{})
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Result != nil {
		updates["result"] = *req.Result
	}
	if req.Score != nil {
		updates["score"] = *req.Score
	}
	if req.Feedback != nil {
		updates["feedback"] = *req.Feedback
	}

	out, err := h.Repository.UpdateInterview(c.Request.Context(), rec.ID, updates)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to update interview", "id", rec.ID, "err", err)
		response.InternalError(c)
		return
	}

	response.OK(c, out)
}

func (h *Handler) DeleteInterview(c *gin.Context) {
	rec, ok := h.loadOwned(c)
	if !ok {
		return
	}

	if err := h.Repository.DeleteInterview(c.Request.Context(), rec.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "")
			return
		}
		h.Logger.Sugar().Errorw("failed to delete interview", "id", rec.ID, "err", err)
		response.InternalError(c)
		return
	}

	response.NoContent(c)
}

func (h *Handler) UploadRecording(c *gin.Context) {
	rec, ok := h.loadOwned(c)
	if !ok {
		return
	}

	fh, err := c.FormFile(RecordingField)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "please choose a recording file")
		return
	}

	meta := repository.RecordingMeta{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	}
	if _, err := h.Repository.AttachRecording(c.Request.Context(), rec.ID, meta); err != nil {
		h.Logger.Sugar().Errorw("failed to attach recording", "id", rec.ID, "err", err)
		response.InternalError(c)
		return
	}

	h.Logger.Sugar().Infow("recording uploaded", "id", rec.ID, "filename", meta.Filename,
		"content_type", meta.ContentType, "size", meta.Size)
	response.Message(c, "recording uploaded")
}

func (h *Handler) CompleteInterview(c *gin.Context) {
	rec, ok := h.loadOwned(c)
	if !ok {
		return
	}

	if err := h.Repository.CompleteInterview(c.Request.Context(), rec.ID); err != nil {
		if errors.Is(err, repository.ErrRecordingRequired) {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Sugar().Errorw("failed to complete interview", "id", rec.ID, "err", err)
		response.InternalError(c)
		return
	}

	response.Message(c, "interview completed")
}

func (h *Handler) UpcomingInterviews(c *gin.Context) {
	list, err := h.Repository.Upcoming(c.Request.Context(), upcomingLimit)
	if err != nil {
		h.Logger.Sugar().Warnw("upcoming interviews failed", "err", err)
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

func (h *Handler) MyInterviews(c *gin.Context) {
	user := h.GetUserFromContext(c)
	list, err := h.Repository.ListInterviews(c.Request.Context(), repository.ListFilter{
		Status:      c.Query("status"),
		Interviewer: user.Username,
	})
	if err != nil {
		h.Logger.Sugar().Warnw("my interviews failed", "err", err)
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}
