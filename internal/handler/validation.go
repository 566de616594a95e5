package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/abhishek622/interviewdesk/pkg/model"
	"github.com/abhishek622/interviewdesk/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	msgRequired      = "This field is required."
	msgBlank         = "This field may not be blank."
	msgInteger       = "A valid integer is required."
	msgDatetime      = "Datetime has wrong format. Use one of these formats instead: YYYY-MM-DDThh:mm[:ss]."
	msgDuration      = "Ensure this value is between 15 and 180 in steps of 15."
	msgPastSchedule  = "The interview cannot be scheduled in the past."
	msgNeedRecording = "A recording must be uploaded before the interview can be completed."
)

var registerOnce sync.Once

// registerJSONTagNames makes binding errors report JSON field names.
func registerJSONTagNames() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(jsonTagName)
		}
	})
}

func jsonTagName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

func choiceMessage(v string) string {
	return fmt.Sprintf("%q is not a valid choice.", v)
}

// bindError converts a binding failure into the field map the console
// expects, or a detail message when the body could not be parsed at all.
func (h *Handler) bindError(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make(map[string][]string, len(ve))
		for _, fe := range ve {
			fields[fe.Field()] = append(fields[fe.Field()], tagMessage(fe))
		}
		response.Fields(c, fields)
		return
	}

	var te *json.UnmarshalTypeError
	if errors.As(err, &te) && te.Field != "" {
		response.Fields(c, map[string][]string{te.Field: {msgInteger}})
		return
	}

	h.Logger.Sugar().Warnw("bad request body", "path", c.Request.URL.Path, "err", err)
	response.Detail(c, http.StatusBadRequest, "JSON parse error - "+err.Error())
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "min":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	default:
		return "Invalid value."
	}
}

func validMethod(m model.Method) bool {
	switch m {
	case model.MethodPhone, model.MethodVideo, model.MethodOnsite:
		return true
	}
	return false
}

func validRound(r model.Round) bool {
	switch r {
	case model.RoundFirst, model.RoundSecond, model.RoundThird, model.RoundFinal, model.RoundOther:
		return true
	}
	return false
}

func validStatus(s model.Status) bool {
	switch s {
	case model.StatusScheduled, model.StatusInProgress, model.StatusCompleted, model.StatusCancelled:
		return true
	}
	return false
}

func validResult(r model.Result) bool {
	switch r {
	case model.ResultPending, model.ResultPassed, model.ResultRejected, model.ResultOffer, model.ResultDeclined:
		return true
	}
	return false
}

func validDuration(d int) bool {
	return d >= model.MinDuration && d <= model.MaxDuration && d%model.DurationStep == 0
}
