package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/abhishek622/interviewdesk/internal/console"
	"github.com/abhishek622/interviewdesk/internal/labels"
	"github.com/abhishek622/interviewdesk/pkg/model"
	"github.com/dustin/go-humanize"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func actions(r console.Row) string {
	var acts []string
	if r.CanUpload {
		acts = append(acts, "upload")
	}
	if r.CanComplete {
		acts = append(acts, "complete")
	}
	if len(acts) == 0 {
		return "-"
	}
	return strings.Join(acts, ",")
}

func tierMark(t labels.Tier) string {
	switch t {
	case labels.TierSuccess:
		return "+"
	case labels.TierDanger:
		return "!"
	case labels.TierWarning:
		return "~"
	}
	return ""
}

func printRows(w io.Writer, rows []console.Row) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "no interviews")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tCANDIDATE\tCOMPANY\tPOSITION\tWHEN\tMETHOD\tROUND\tSTATUS\tRESULT\tRECORDING\tACTIONS")
	for _, r := range rows {
		rec := "no"
		if r.RecordingUploaded {
			rec = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s%s\t%s%s\t%s\t%s\n",
			r.ID, r.CandidateName, r.CompanyName, r.PositionTitle, r.When,
			r.MethodLabel, r.RoundLabel,
			tierMark(r.StatusTier), r.StatusLabel,
			tierMark(r.ResultTier), r.ResultLabel,
			rec, actions(r))
	}
	return tw.Flush()
}

func ago(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return humanize.Time(*t)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func printDetail(w io.Writer, r console.Row) error {
	score := "-"
	if r.Score != nil {
		score = fmt.Sprint(*r.Score)
	}
	interviewer := "-"
	if r.InterviewerInfo != nil {
		interviewer = r.InterviewerInfo.DisplayName()
	}
	recording := "-"
	if r.Recording != nil {
		recording = *r.Recording
	}

	tw := newTable(w)
	fields := [][2]string{
		{"ID", fmt.Sprint(r.ID)},
		{"Candidate", r.CandidateName},
		{"Phone", orDash(r.CandidatePhone)},
		{"Email", orDash(r.CandidateEmail)},
		{"Company", r.CompanyName},
		{"Position", r.PositionTitle},
		{"Description", orDash(r.PositionDescription)},
		{"Method", r.MethodLabel},
		{"Round", r.RoundLabel},
		{"Scheduled", r.When},
		{"Duration", fmt.Sprintf("%d min", r.Duration)},
		{"Status", r.StatusLabel},
		{"Result", r.ResultLabel},
		{"Score", score},
		{"Feedback", orDash(r.Feedback)},
		{"Recording", recording},
		{"Notes", orDash(r.InterviewerNotes)},
		{"Interviewer", interviewer},
		{"Created", ago(r.CreatedTime)},
		{"Updated", ago(r.UpdatedTime)},
		{"Completed", ago(r.CompletedTime)},
		{"Actions", actions(r)},
	}
	for _, f := range fields {
		fmt.Fprintf(tw, "%s:\t%s\n", f[0], f[1])
	}
	return tw.Flush()
}

func printStats(w io.Writer, s model.DashboardStats, t *labels.Table) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "Today:\t%s\n", humanize.Comma(int64(s.TodayCount)))
	fmt.Fprintf(tw, "This week:\t%s\n", humanize.Comma(int64(s.WeekCount)))
	fmt.Fprintf(tw, "This month:\t%s\n", humanize.Comma(int64(s.MonthCount)))
	fmt.Fprintf(tw, "Pass rate:\t%.1f%%\n", s.PassRate)
	fmt.Fprintf(tw, "Need recording:\t%s\n", humanize.Comma(int64(s.NeedRecording)))
	fmt.Fprintf(tw, "Total:\t%s\n", humanize.Comma(int64(s.TotalCount)))
	if len(s.StatusStats) > 0 {
		fmt.Fprintln(tw, "\t")
		for _, st := range s.StatusStats {
			fmt.Fprintf(tw, "%s:\t%d\n", t.StatusLabel(st.Status), st.Count)
		}
	}
	return tw.Flush()
}

func printPage(w io.Writer, p model.Pagination) {
	fmt.Fprintf(w, "page %d, %d per page, %d shown\n", p.CurrentPage, p.PageSize, p.Total)
}
