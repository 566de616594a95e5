package model

import (
	"time"
)

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

type Result string

const (
	ResultPending  Result = "pending"
	ResultPassed   Result = "passed"
	ResultRejected Result = "rejected"
	ResultOffer    Result = "offer"
	ResultDeclined Result = "declined"
)

type Method string

const (
	MethodPhone  Method = "phone"
	MethodVideo  Method = "video"
	MethodOnsite Method = "onsite"
)

type Round string

const (
	RoundFirst  Round = "first"
	RoundSecond Round = "second"
	RoundThird  Round = "third"
	RoundFinal  Round = "final"
	RoundOther  Round = "other"
)

// Duration bounds in minutes.
const (
	MinDuration     = 15
	MaxDuration     = 180
	DurationStep    = 15
	DefaultDuration = 60
)

// Interview is the canonical record as returned by the backend. Unknown
// status/result codes are kept verbatim.
type Interview struct {
	ID                  int64      `json:"id"`
	CandidateName       string     `json:"candidate_name"`
	CandidatePhone      string     `json:"candidate_phone"`
	CandidateEmail      string     `json:"candidate_email"`
	CompanyName         string     `json:"company_name"`
	PositionTitle       string     `json:"position_title"`
	PositionDescription string     `json:"position_description"`
	InterviewMethod     Method     `json:"interview_method"`
	InterviewRound      Round      `json:"interview_round"`
	ScheduledTime       string     `json:"scheduled_time"`
	Duration            int        `json:"duration"`
	Status              Status     `json:"status"`
	Result              Result     `json:"result"`
	Score               *int       `json:"score"`
	Feedback            string     `json:"feedback"`
	RecordingUploaded   bool       `json:"recording_uploaded"`
	Recording           *string    `json:"recording"`
	InterviewerNotes    string     `json:"interviewer_notes"`
	InterviewerInfo     *Profile   `json:"interviewer_info,omitempty"`
	CreatedTime         *time.Time `json:"created_time,omitempty"`
	UpdatedTime         *time.Time `json:"updated_time,omitempty"`
	CompletedTime       *time.Time `json:"completed_time,omitempty"`
}

// CreateDraft is the editable create form. Duration stays textual until the
// draft is sanitized into a CreateInterviewReq.
type CreateDraft struct {
	CandidateName       string `json:"candidate_name"`
	CandidatePhone      string `json:"candidate_phone"`
	CandidateEmail      string `json:"candidate_email"`
	CompanyName         string `json:"company_name"`
	PositionTitle       string `json:"position_title"`
	PositionDescription string `json:"position_description"`
	InterviewMethod     Method `json:"interview_method"`
	InterviewRound      Round  `json:"interview_round"`
	ScheduledTime       string `json:"scheduled_time"`
	Duration            string `json:"duration"`
	InterviewerNotes    string `json:"interviewer_notes"`
}

// NewCreateDraft returns an empty draft with the form defaults applied.
func NewCreateDraft() CreateDraft {
	return CreateDraft{
		InterviewMethod: MethodVideo,
		InterviewRound:  RoundFirst,
		Duration:        "60",
	}
}

// CreateInterviewReq is the create payload. Field order matters: validation
// reports the first failing field in declaration order.
type CreateInterviewReq struct {
	CandidateName       string `json:"candidate_name" binding:"required" validate:"required"`
	CandidatePhone      string `json:"candidate_phone" binding:"required" validate:"required"`
	CompanyName         string `json:"company_name" binding:"required" validate:"required"`
	PositionTitle       string `json:"position_title" binding:"required" validate:"required"`
	ScheduledTime       string `json:"scheduled_time" binding:"required" validate:"required"`
	CandidateEmail      string `json:"candidate_email"`
	PositionDescription string `json:"position_description"`
	InterviewMethod     Method `json:"interview_method"`
	InterviewRound      Round  `json:"interview_round"`
	Duration            int    `json:"duration" validate:"duration"`
	InterviewerNotes    string `json:"interviewer_notes"`
}

// PatchInterviewRequest carries only the fields being changed.
type PatchInterviewRequest struct {
	Status   *Status `json:"status,omitempty"`
	Result   *Result `json:"result,omitempty"`
	Score    *int    `json:"score,omitempty" binding:"omitempty,min=1,max=100" validate:"omitempty,min=1,max=100"`
	Feedback *string `json:"feedback,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p PatchInterviewRequest) Empty() bool {
	return p.Status == nil && p.Result == nil && p.Score == nil && p.Feedback == nil
}

// DateRange is only meaningful when both bounds are set.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (d *DateRange) Complete() bool {
	return d != nil && d.Start != "" && d.End != ""
}

type Filter struct {
	Status      string     `json:"status"`
	Company     string     `json:"company"`
	Candidate   string     `json:"candidate"`
	DateRange   *DateRange `json:"date_range"`
	Interviewer string     `json:"interviewer"`
}

type Pagination struct {
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
	Total       int `json:"total"`
}

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

type SortDirection string

const (
	SortAscending  SortDirection = "ascending"
	SortDescending SortDirection = "descending"
)

type Sort struct {
	Field     string        `json:"field"`
	Direction SortDirection `json:"direction"`
}

// ListInterviewQuery is the wire form of a list request.
type ListInterviewQuery struct {
	Page          int    `json:"page" form:"page"`
	PageSize      int    `json:"page_size" form:"page_size"`
	Status        string `json:"status" form:"status"`
	Company       string `json:"company" form:"company"`
	CandidateName string `json:"candidate_name" form:"candidate_name"`
	DateFrom      string `json:"date_from" form:"date_from"`
	DateTo        string `json:"date_to" form:"date_to"`
}

type ListStats struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type DashboardStats struct {
	TodayCount    int         `json:"today_count"`
	WeekCount     int         `json:"week_count"`
	MonthCount    int         `json:"month_count"`
	PassRate      float64     `json:"pass_rate"`
	NeedRecording int         `json:"need_recording"`
	StatusStats   []ListStats `json:"status_stats"`
	TotalCount    int         `json:"total_count"`
}
