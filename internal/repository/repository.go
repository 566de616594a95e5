package repository

import (
	"errors"
	"sync"
	"time"

	"github.com/abhishek622/interviewdesk/pkg/model"
)

var (
	ErrNotFound          = errors.New("interview not found")
	ErrRecordingRequired = errors.New("a recording must be uploaded before the interview can be completed")
)

// RecordingMeta describes an uploaded recording.
type RecordingMeta struct {
	Filename    string
	ContentType string
	Size        int64
}

// Repository is an in-memory interview store backing the sandbox API.
type Repository struct {
	mu         sync.RWMutex
	nextID     int64
	interviews map[int64]*model.Interview
	recordings map[int64]RecordingMeta
	now        func() time.Time
}

func NewRepository(now func() time.Time) *Repository {
	if now == nil {
		now = time.Now
	}
	return &Repository{
		nextID:     1,
		interviews: make(map[int64]*model.Interview),
		recordings: make(map[int64]RecordingMeta),
		now:        now,
	}
}

func clone(in *model.Interview) model.Interview {
	out := *in
	if in.Score != nil {
		v := *in.Score
		out.Score = &v
	}
	if in.Recording != nil {
		v := *in.Recording
		out.Recording = &v
	}
	if in.InterviewerInfo != nil {
		v := *in.InterviewerInfo
		out.InterviewerInfo = &v
	}
	return out
}

// Now reports the repository clock.
func (r *Repository) Now() time.Time {
	return r.now()
}
