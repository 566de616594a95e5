package validate

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/abhishek622/interviewdesk/pkg/model"
	"github.com/go-playground/validator/v10"
)

// ValidationError names the first offending field of a form.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "validation failed on " + e.Field + ": " + e.Message
}

// UserMessage is what the notifier shows.
func (e *ValidationError) UserMessage() string {
	return e.Message
}

var messages = map[string]string{
	"candidate_name":  "please enter the candidate name",
	"candidate_phone": "please enter a contact phone number",
	"company_name":    "please enter the company name",
	"position_title":  "please enter the position title",
	"scheduled_time":  "please choose the interview time",
	"duration":        "duration must be a whole number of minutes",
	"duration.range":  "duration must be 15 to 180 minutes in steps of 15",
	"score":           "score must be between 1 and 100",
}

func messageFor(field string) string {
	if m, ok := messages[field]; ok {
		return m
	}
	return "invalid " + field
}

var v = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		d := fl.Field().Int()
		return d >= model.MinDuration && d <= model.MaxDuration && d%model.DurationStep == 0
	}); err != nil {
		panic(err)
	}
	return v
}

// Sanitize trims every text field of the draft and converts the duration.
// An empty duration falls back to the default.
func Sanitize(d model.CreateDraft) (model.CreateInterviewReq, error) {
	req := model.CreateInterviewReq{
		CandidateName:       strings.TrimSpace(d.CandidateName),
		CandidatePhone:      strings.TrimSpace(d.CandidatePhone),
		CompanyName:         strings.TrimSpace(d.CompanyName),
		PositionTitle:       strings.TrimSpace(d.PositionTitle),
		ScheduledTime:       strings.TrimSpace(d.ScheduledTime),
		CandidateEmail:      strings.TrimSpace(d.CandidateEmail),
		PositionDescription: strings.TrimSpace(d.PositionDescription),
		InterviewMethod:     model.Method(strings.TrimSpace(string(d.InterviewMethod))),
		InterviewRound:      model.Round(strings.TrimSpace(string(d.InterviewRound))),
		InterviewerNotes:    strings.TrimSpace(d.InterviewerNotes),
	}

	duration, err := parseDuration(d.Duration)
	if err != nil {
		return req, &ValidationError{Field: "duration", Message: messageFor("duration")}
	}
	req.Duration = duration
	return req, nil
}

func parseDuration(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.DefaultDuration, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, errors.New("not a whole number")
	}
	return int(f), nil
}

// CreatePayload sanitizes the draft and checks the required fields in form
// order, then the duration, returning only the first failure.
func CreatePayload(d model.CreateDraft) (model.CreateInterviewReq, error) {
	req, durErr := Sanitize(d)
	err := first(v.Struct(req))
	var ve *ValidationError
	if durErr != nil && (err == nil || errors.As(err, &ve) && ve.Field == "duration") {
		return req, durErr
	}
	return req, err
}

// Patch checks an edit before it is sent.
func Patch(p model.PatchInterviewRequest) error {
	return first(v.Struct(p))
}

func first(err error) error {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		field := ve[0].Field()
		msg := messageFor(field)
		if ve[0].Tag() == "duration" {
			msg = messages["duration.range"]
		}
		return &ValidationError{Field: field, Message: msg}
	}
	return err
}
