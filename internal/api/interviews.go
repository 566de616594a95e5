package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strconv"

	"github.com/abhishek622/interviewdesk/pkg/model"
	"github.com/gabriel-vasile/mimetype"
)

const (
	pathInterviews = "interviews/"
	pathStats      = "dashboard/stats/"
	pathCSRF       = "csrf/"
	pathLogout     = "api-auth/logout/"

	// RecordingField is the multipart field the backend reads the file from.
	RecordingField = "recording"

	sniffLen = 3072
)

func interviewPath(id int64, action string) string {
	p := pathInterviews + strconv.FormatInt(id, 10) + "/"
	if action != "" {
		p += action + "/"
	}
	return p
}

// ListInterviews fetches one page. The backend answers with a bare array, so
// the returned total is the length of that page.
func (c *Client) ListInterviews(ctx context.Context, params url.Values) ([]model.Interview, int, error) {
	var out []model.Interview
	if err := c.do(ctx, request{method: http.MethodGet, ref: pathInterviews, query: params}, &out); err != nil {
		return nil, 0, err
	}
	if out == nil {
		out = []model.Interview{}
	}
	return out, len(out), nil
}

func (c *Client) GetInterview(ctx context.Context, id int64) (*model.Interview, error) {
	var out model.Interview
	if err := c.do(ctx, request{method: http.MethodGet, ref: interviewPath(id, "")}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateInterview(ctx context.Context, req model.CreateInterviewReq) (*model.Interview, error) {
	body, err := jsonBody(req)
	if err != nil {
		return nil, err
	}
	var out model.Interview
	err = c.do(ctx, request{
		method: http.MethodPost, ref: pathInterviews,
		body: body, contentType: "application/json",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateInterview sends a partial update; only non-nil fields go on the wire.
func (c *Client) UpdateInterview(ctx context.Context, id int64, patch model.PatchInterviewRequest) (*model.Interview, error) {
	body, err := jsonBody(patch)
	if err != nil {
		return nil, err
	}
	var out model.Interview
	err = c.do(ctx, request{
		method: http.MethodPatch, ref: interviewPath(id, ""),
		body: body, contentType: "application/json",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteInterview(ctx context.Context, id int64) error {
	return c.do(ctx, request{method: http.MethodDelete, ref: interviewPath(id, "")}, nil)
}

// UploadRecording posts the file as multipart field "recording". The part's
// content type is sniffed from the first bytes of the file.
func (c *Client) UploadRecording(ctx context.Context, id int64, filename string, r io.Reader) error {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return fmt.Errorf("read recording: %w", err)
	}
	head = head[:n]
	mt := mimetype.Detect(head)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, RecordingField, filepath.Base(filename)))
	h.Set("Content-Type", mt.String())
	part, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create multipart part: %w", err)
	}
	if _, err := io.Copy(part, io.MultiReader(bytes.NewReader(head), r)); err != nil {
		return fmt.Errorf("copy recording: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close multipart: %w", err)
	}

	return c.do(ctx, request{
		method: http.MethodPost, ref: interviewPath(id, "upload_recording"),
		body: &buf, contentType: mw.FormDataContentType(),
	}, nil)
}

func (c *Client) CompleteInterview(ctx context.Context, id int64) error {
	return c.do(ctx, request{method: http.MethodPost, ref: interviewPath(id, "complete_interview")}, nil)
}

func (c *Client) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	var out model.DashboardStats
	if err := c.do(ctx, request{method: http.MethodGet, ref: pathStats}, &out); err != nil {
		return nil, err
	}
	if out.StatusStats == nil {
		out.StatusStats = []model.ListStats{}
	}
	return &out, nil
}

// UpcomingInterviews lists the next scheduled or running interviews.
func (c *Client) UpcomingInterviews(ctx context.Context) ([]model.Interview, error) {
	var out []model.Interview
	if err := c.do(ctx, request{method: http.MethodGet, ref: pathInterviews + "upcoming_interviews/"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MyInterviews lists interviews assigned to the current user.
func (c *Client) MyInterviews(ctx context.Context, status string) ([]model.Interview, error) {
	var q url.Values
	if status != "" {
		q = url.Values{"status": {status}}
	}
	var out []model.Interview
	if err := c.do(ctx, request{method: http.MethodGet, ref: pathInterviews + "my_interviews/", query: q}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EnsureCSRF asks the backend for an anti-forgery token when none is held.
func (c *Client) EnsureCSRF(ctx context.Context) error {
	if c.tokens.CSRFToken() != "" {
		return nil
	}
	var out struct {
		CSRFToken string `json:"csrfToken"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, ref: pathCSRF}, &out); err != nil {
		return err
	}
	if c.tokens.CSRFToken() == "" && out.CSRFToken != "" {
		c.jar.SetCookies(c.root, []*http.Cookie{{Name: CSRFCookie, Value: out.CSRFToken, Path: "/"}})
		c.persistCookies(ctx)
	}
	return nil
}

// Logout ends the server session. The local session is cleared and the
// redirect signalled whatever the server answers; the returned error is
// informational.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, request{method: http.MethodPost, ref: pathLogout, fromRoot: true}, nil)
	if err != nil {
		c.logger.Sugar().Warnw("logout request failed", "err", err)
	}
	var ae *AuthError
	if !errors.As(err, &ae) {
		c.forceLogout(ctx)
	}
	return err
}
