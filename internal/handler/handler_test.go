package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/abhishek622/interviewdesk/internal/repository"
	"github.com/abhishek622/interviewdesk/pkg/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testCSRF = "csrf-test-token"

type sandbox struct {
	h      *Handler
	router http.Handler
	alice  string
}

func newSandbox(t *testing.T) *sandbox {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := New(zap.NewNop(), repository.NewRepository(nil), nil, Options{})
	token := h.Sessions.Issue(&model.Profile{ID: 1, Username: "alice"})
	return &sandbox{h: h, router: h.Router(), alice: token}
}

func (s *sandbox) do(t *testing.T, method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	}
	req.AddCookie(&http.Cookie{Name: CSRFCookie, Value: testCSRF})
	req.Header.Set(CSRFHeader, testCSRF)

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *sandbox) doJSON(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	return s.do(t, method, path, token, bytes.NewReader(b), "application/json")
}

func (s *sandbox) create(t *testing.T) model.Interview {
	t.Helper()
	rec := s.doJSON(t, http.MethodPost, "/api/interviews/", s.alice, map[string]any{
		"candidate_name":  "Li Lei",
		"candidate_phone": "13800000000",
		"company_name":    "Acme",
		"position_title":  "Engineer",
		"scheduled_time":  "2030-01-01T10:00:00",
		"duration":        60,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var out model.Interview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestSessionAuth(t *testing.T) {
	s := newSandbox(t)

	tests := []struct {
		name  string
		token string
	}{
		{"no cookie", ""},
		{"unknown session", "nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, "/api/interviews/", tt.token, nil, "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, decodeMap(t, rec), "detail")
		})
	}
}

func TestCSRFProtect(t *testing.T) {
	s := newSandbox(t)

	req := httptest.NewRequest(http.MethodPost, "/api/interviews/", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: s.alice})
	req.AddCookie(&http.Cookie{Name: CSRFCookie, Value: testCSRF})
	req.Header.Set(CSRFHeader, "something-else")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, decodeMap(t, rec)["detail"], "CSRF")
}

func TestCSRFToken_IssuesCookie(t *testing.T) {
	s := newSandbox(t)

	req := httptest.NewRequest(http.MethodGet, "/api/csrf/", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	token, _ := decodeMap(t, rec)["csrfToken"].(string)
	require.NotEmpty(t, token)

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == CSRFCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, token, cookie.Value)
}

func TestCreateInterview(t *testing.T) {
	s := newSandbox(t)

	out := s.create(t)
	assert.NotZero(t, out.ID)
	assert.Equal(t, model.StatusScheduled, out.Status)
	assert.Equal(t, model.ResultPending, out.Result)
	assert.Equal(t, model.MethodVideo, out.InterviewMethod)
	assert.Equal(t, model.RoundFirst, out.InterviewRound)
	require.NotNil(t, out.InterviewerInfo)
	assert.Equal(t, "alice", out.InterviewerInfo.Username)
}

func TestCreateInterview_Validation(t *testing.T) {
	s := newSandbox(t)

	tests := []struct {
		name   string
		body   map[string]any
		fields []string
	}{
		{
			name:   "missing required",
			body:   map[string]any{"candidate_phone": "1"},
			fields: []string{"candidate_name", "company_name", "position_title", "scheduled_time"},
		},
		{
			name: "blank after trim",
			body: map[string]any{
				"candidate_name": "   ", "candidate_phone": "1", "company_name": "Acme",
				"position_title": "Eng", "scheduled_time": "2030-01-01T10:00:00",
			},
			fields: []string{"candidate_name"},
		},
		{
			name: "bad choices and duration",
			body: map[string]any{
				"candidate_name": "a", "candidate_phone": "1", "company_name": "Acme",
				"position_title": "Eng", "scheduled_time": "2030-01-01T10:00:00",
				"interview_method": "carrier-pigeon", "interview_round": "tenth", "duration": 50,
			},
			fields: []string{"interview_method", "interview_round", "duration"},
		},
		{
			name: "duration as text",
			body: map[string]any{
				"candidate_name": "a", "candidate_phone": "1", "company_name": "Acme",
				"position_title": "Eng", "scheduled_time": "2030-01-01T10:00:00", "duration": "sixty",
			},
			fields: []string{"duration"},
		},
		{
			name: "unparseable schedule",
			body: map[string]any{
				"candidate_name": "a", "candidate_phone": "1", "company_name": "Acme",
				"position_title": "Eng", "scheduled_time": "next tuesday",
			},
			fields: []string{"scheduled_time"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.doJSON(t, http.MethodPost, "/api/interviews/", s.alice, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

			got := decodeMap(t, rec)
			assert.Len(t, got, len(tt.fields))
			for _, f := range tt.fields {
				assert.Contains(t, got, f)
			}
		})
	}
}

func TestCreateInterview_RejectPastSchedules(t *testing.T) {
	s := newSandbox(t)
	s.h.Options.RejectPastSchedules = true

	rec := s.doJSON(t, http.MethodPost, "/api/interviews/", s.alice, map[string]any{
		"candidate_name": "a", "candidate_phone": "1", "company_name": "Acme",
		"position_title": "Eng", "scheduled_time": "2001-01-01T10:00:00",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeMap(t, rec), "non_field_errors")
}

func TestListInterviews_ScopedAndFiltered(t *testing.T) {
	s := newSandbox(t)
	s.create(t)
	s.create(t)

	rec := s.do(t, http.MethodGet, "/api/interviews/?page=1&page_size=1", s.alice, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var page []model.Interview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page, 1)

	rec = s.do(t, http.MethodGet, "/api/interviews/?page=1&page_size=5000", s.alice, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page, 2)

	rec = s.do(t, http.MethodGet, "/api/interviews/?status=completed", s.alice, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	bob := s.h.Sessions.Issue(&model.Profile{ID: 2, Username: "bob"})
	rec = s.do(t, http.MethodGet, "/api/interviews/", bob, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	staff := s.h.Sessions.Issue(&model.Profile{ID: 3, Username: "root", IsStaff: true})
	rec = s.do(t, http.MethodGet, "/api/interviews/", staff, nil, "")
	var all []model.Interview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 2)
}

func TestGetInterview_NotOwned(t *testing.T) {
	s := newSandbox(t)
	out := s.create(t)

	bob := s.h.Sessions.Issue(&model.Profile{ID: 2, Username: "bob"})
	rec := s.do(t, http.MethodGet, "/api/interviews/1/", bob, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/interviews/1/", s.alice, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got model.Interview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, out.ID, got.ID)
}

func TestPatchInterview(t *testing.T) {
	s := newSandbox(t)
	s.create(t)

	rec := s.doJSON(t, http.MethodPatch, "/api/interviews/1/", s.alice, map[string]any{
		"result": "passed", "score": 88, "feedback": "solid",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got model.Interview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, model.ResultPassed, got.Result)
	require.NotNil(t, got.Score)
	assert.Equal(t, 88, *got.Score)
	assert.Equal(t, "solid", got.Feedback)
	assert.Equal(t, model.StatusScheduled, got.Status)

	rec = s.doJSON(t, http.MethodPatch, "/api/interviews/1/", s.alice, map[string]any{"score": 101})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeMap(t, rec), "score")

	rec = s.doJSON(t, http.MethodPatch, "/api/interviews/1/", s.alice, map[string]any{"status": "completed"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeMap(t, rec), "non_field_errors")

	rec = s.doJSON(t, http.MethodPatch, "/api/interviews/1/", s.alice, map[string]any{"status": "bogus"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeMap(t, rec), "status")
}

func TestRecordingThenComplete(t *testing.T) {
	s := newSandbox(t)
	s.create(t)

	rec := s.do(t, http.MethodPost, "/api/interviews/1/complete_interview/", s.alice, nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeMap(t, rec), "error")

	rec = s.do(t, http.MethodPost, "/api/interviews/1/upload_recording/", s.alice, nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeMap(t, rec), "error")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(RecordingField, "call.mp3")
	require.NoError(t, err)
	_, err = part.Write([]byte("ID3 fake audio"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	rec = s.do(t, http.MethodPost, "/api/interviews/1/upload_recording/", s.alice, &buf, mw.FormDataContentType())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	meta, ok := s.h.Repository.Recording(1)
	require.True(t, ok)
	assert.Equal(t, "call.mp3", meta.Filename)

	rec = s.do(t, http.MethodPost, "/api/interviews/1/complete_interview/", s.alice, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/interviews/1/", s.alice, nil, "")
	var got model.Interview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, model.StatusCompleted, got.Status)
	assert.True(t, got.RecordingUploaded)
	assert.NotNil(t, got.CompletedTime)
}

func TestDeleteInterview(t *testing.T) {
	s := newSandbox(t)
	s.create(t)

	rec := s.do(t, http.MethodDelete, "/api/interviews/1/", s.alice, nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/interviews/1/", s.alice, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpcomingAndMine(t *testing.T) {
	s := newSandbox(t)
	s.create(t)

	rec := s.do(t, http.MethodGet, "/api/interviews/upcoming_interviews/", s.alice, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var upcoming []model.Interview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &upcoming))
	assert.Len(t, upcoming, 1)

	rec = s.do(t, http.MethodGet, "/api/interviews/my_interviews/?status=cancelled", s.alice, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestDashboardStats(t *testing.T) {
	s := newSandbox(t)
	s.create(t)

	rec := s.do(t, http.MethodGet, "/api/dashboard/stats/", s.alice, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats model.DashboardStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.TotalCount)
	assert.Equal(t, []model.ListStats{{Status: "scheduled", Count: 1}}, stats.StatusStats)
}

func TestLogout_RevokesSession(t *testing.T) {
	s := newSandbox(t)

	rec := s.do(t, http.MethodPost, "/api-auth/logout/", s.alice, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	_, ok := s.h.Sessions.Lookup(s.alice)
	assert.False(t, ok)

	rec = s.do(t, http.MethodGet, "/api/interviews/", s.alice, nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
