package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/abhishek622/interviewdesk/pkg"
	"github.com/abhishek622/interviewdesk/pkg/model"
)

var scheduleLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseSchedule accepts the formats the create form and the backend emit.
func ParseSchedule(s string) (time.Time, error) {
	for _, layout := range scheduleLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid scheduled_time %q", s)
}

func (r *Repository) CreateInterview(_ context.Context, in *model.Interview) (*model.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	rec := clone(in)
	rec.ID = r.nextID
	r.nextID++
	if rec.Status == "" {
		rec.Status = model.StatusScheduled
	}
	if rec.Result == "" {
		rec.Result = model.ResultPending
	}
	if rec.Duration == 0 {
		rec.Duration = model.DefaultDuration
	}
	rec.CreatedTime = &now
	rec.UpdatedTime = &now
	r.interviews[rec.ID] = &rec

	out := clone(&rec)
	return &out, nil
}

// UpdateInterview applies a partial update. Unknown columns are ignored.
func (r *Repository) UpdateInterview(_ context.Context, interviewID int64, updates map[string]interface{}) (*model.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.interviews[interviewID]
	if !ok {
		return nil, ErrNotFound
	}

	for col, val := range updates {
		switch col {
		case "status":
			rec.Status = val.(model.Status)
		case "result":
			rec.Result = val.(model.Result)
		case "score":
			v := val.(int)
			rec.Score = &v
		case "feedback":
			rec.Feedback = val.(string)
		}
	}

	now := r.now()
	if rec.Status == model.StatusCompleted && rec.CompletedTime == nil {
		rec.CompletedTime = &now
	}
	rec.UpdatedTime = &now

	out := clone(rec)
	return &out, nil
}

func (r *Repository) GetInterviewByID(_ context.Context, interviewID int64) (*model.Interview, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.interviews[interviewID]
	if !ok {
		return nil, ErrNotFound
	}
	out := clone(rec)
	return &out, nil
}

type ListFilter struct {
	Status        string
	Company       string
	CandidateName string
	DateFrom      string
	DateTo        string
	Interviewer   string
	Page          int
	PageSize      int
}

func (f ListFilter) match(rec *model.Interview) bool {
	if f.Status != "" && string(rec.Status) != f.Status {
		return false
	}
	if f.Company != "" && !strings.Contains(strings.ToLower(rec.CompanyName), strings.ToLower(f.Company)) {
		return false
	}
	if f.CandidateName != "" && !strings.Contains(strings.ToLower(rec.CandidateName), strings.ToLower(f.CandidateName)) {
		return false
	}
	if f.Interviewer != "" && (rec.InterviewerInfo == nil || rec.InterviewerInfo.Username != f.Interviewer) {
		return false
	}
	// the date range only applies with both bounds
	if f.DateFrom != "" && f.DateTo != "" {
		t, err := ParseSchedule(rec.ScheduledTime)
		if err != nil {
			return false
		}
		day := t.Format(time.DateOnly)
		if day < f.DateFrom || day > f.DateTo {
			return false
		}
	}
	return true
}

// ListInterviews returns matching interviews, latest schedule first. Page
// and PageSize are applied only when both are positive.
func (r *Repository) ListInterviews(_ context.Context, f ListFilter) ([]model.Interview, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Interview, 0, len(r.interviews))
	for _, rec := range r.interviews {
		if f.match(rec) {
			out = append(out, clone(rec))
		}
	}
	sortBySchedule(out, true)

	if f.Page > 0 && f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		if offset >= len(out) {
			return []model.Interview{}, nil
		}
		end := min(offset+f.PageSize, len(out))
		out = out[offset:end]
	}
	return out, nil
}

func sortBySchedule(list []model.Interview, desc bool) {
	slices.SortStableFunc(list, func(a, b model.Interview) int {
		ta, _ := ParseSchedule(a.ScheduledTime)
		tb, _ := ParseSchedule(b.ScheduledTime)
		c := ta.Compare(tb)
		if c == 0 {
			c = int(a.ID - b.ID)
		}
		if desc {
			return -c
		}
		return c
	})
}

// Upcoming returns scheduled or running interviews from now on, soonest first.
func (r *Repository) Upcoming(_ context.Context, limit int) ([]model.Interview, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	now := r.now()
	out := []model.Interview{}
	for _, rec := range r.interviews {
		if rec.Status != model.StatusScheduled && rec.Status != model.StatusInProgress {
			continue
		}
		t, err := ParseSchedule(rec.ScheduledTime)
		if err != nil || t.Before(now) {
			continue
		}
		out = append(out, clone(rec))
	}
	sortBySchedule(out, false)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *Repository) DeleteInterview(_ context.Context, interviewID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.interviews[interviewID]; !ok {
		return ErrNotFound
	}
	delete(r.interviews, interviewID)
	delete(r.recordings, interviewID)
	return nil
}

// AttachRecording stores the recording metadata and flips recording_uploaded.
func (r *Repository) AttachRecording(_ context.Context, interviewID int64, meta RecordingMeta) (*model.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.interviews[interviewID]
	if !ok {
		return nil, ErrNotFound
	}
	now := r.now()
	url := fmt.Sprintf("/media/interview_recordings/%s/%s", now.Format("2006/01/02"), meta.Filename)
	rec.Recording = &url
	rec.RecordingUploaded = true
	rec.UpdatedTime = &now
	r.recordings[interviewID] = meta

	out := clone(rec)
	return &out, nil
}

func (r *Repository) Recording(interviewID int64) (RecordingMeta, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.recordings[interviewID]
	return m, ok
}

// CompleteInterview marks the interview completed. It refuses while no
// recording has been uploaded.
func (r *Repository) CompleteInterview(_ context.Context, interviewID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.interviews[interviewID]
	if !ok {
		return ErrNotFound
	}
	if !rec.RecordingUploaded {
		return ErrRecordingRequired
	}
	now := r.now()
	rec.Status = model.StatusCompleted
	if rec.CompletedTime == nil {
		rec.CompletedTime = &now
	}
	rec.UpdatedTime = &now
	return nil
}

var statusOrder = []model.Status{
	model.StatusScheduled, model.StatusInProgress, model.StatusCompleted, model.StatusCancelled,
}

// Stats computes the dashboard counters relative to the repository clock.
func (r *Repository) Stats(_ context.Context) model.DashboardStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	now := r.now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.AddDate(0, 0, 1)
	weekday := (int(todayStart.Weekday()) + 6) % 7
	weekStart := todayStart.AddDate(0, 0, -weekday)
	weekEnd := weekStart.AddDate(0, 0, 7)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	in := func(t, start, end time.Time) bool { return !t.Before(start) && t.Before(end) }

	var stats model.DashboardStats
	counts := map[model.Status]int{}
	var passed, decided int
	for _, rec := range r.interviews {
		stats.TotalCount++
		counts[rec.Status]++
		if t, err := ParseSchedule(rec.ScheduledTime); err == nil {
			if in(t, todayStart, todayEnd) {
				stats.TodayCount++
			}
			if in(t, weekStart, weekEnd) {
				stats.WeekCount++
			}
			if in(t, monthStart, monthEnd) {
				stats.MonthCount++
			}
		}
		if rec.Status == model.StatusCompleted && !rec.RecordingUploaded {
			stats.NeedRecording++
		}
		switch rec.Result {
		case model.ResultPassed, model.ResultOffer:
			passed++
			decided++
		case model.ResultRejected, model.ResultDeclined:
			decided++
		}
	}
	stats.PassRate = pkg.PassRate(passed, decided)

	stats.StatusStats = []model.ListStats{}
	for _, s := range statusOrder {
		if n := counts[s]; n > 0 {
			stats.StatusStats = append(stats.StatusStats, model.ListStats{Status: string(s), Count: n})
			delete(counts, s)
		}
	}
	extra := make([]string, 0, len(counts))
	for s := range counts {
		extra = append(extra, string(s))
	}
	slices.Sort(extra)
	for _, s := range extra {
		stats.StatusStats = append(stats.StatusStats, model.ListStats{Status: s, Count: counts[model.Status(s)]})
	}
	return stats
}
