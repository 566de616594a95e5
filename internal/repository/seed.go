package repository

import (
	"context"
	"time"

	"github.com/abhishek622/interviewdesk/pkg/model"
)

// Seed loads a handful of interviews scheduled around the repository clock.
func (r *Repository) Seed(ctx context.Context, interviewer *model.Profile) error {
	now := r.now()
	at := func(days, hour int) string {
		d := now.AddDate(0, 0, days)
		return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, d.Location()).Format("2006-01-02T15:04:05")
	}
	score := 86

	seed := []model.Interview{
		{
			CandidateName: "张三", CandidatePhone: "13800138001", CandidateEmail: "zhangsan@example.com",
			CompanyName: "科技有限公司", PositionTitle: "高级后端开发工程师",
			InterviewMethod: model.MethodVideo, InterviewRound: model.RoundFirst,
			ScheduledTime: at(0, 10), Duration: 60, Status: model.StatusScheduled, Result: model.ResultPending,
		},
		{
			CandidateName: "李四", CandidatePhone: "13800138002", CandidateEmail: "lisi@example.com",
			CompanyName: "互联网有限公司", PositionTitle: "前端开发工程师",
			InterviewMethod: model.MethodOnsite, InterviewRound: model.RoundSecond,
			ScheduledTime: at(0, 15), Duration: 90, Status: model.StatusInProgress, Result: model.ResultPending,
		},
		{
			CandidateName: "王五", CandidatePhone: "13800138003", CandidateEmail: "wangwu@example.com",
			CompanyName: "科技有限公司", PositionTitle: "高级后端开发工程师",
			InterviewMethod: model.MethodPhone, InterviewRound: model.RoundFinal,
			ScheduledTime: at(-2, 14), Duration: 45, Status: model.StatusCompleted, Result: model.ResultPassed,
			Score: &score, Feedback: "扎实的系统设计能力",
		},
		{
			CandidateName: "赵六", CandidatePhone: "13800138004", CandidateEmail: "zhaoliu@example.com",
			CompanyName: "互联网有限公司", PositionTitle: "数据分析师",
			InterviewMethod: model.MethodVideo, InterviewRound: model.RoundFirst,
			ScheduledTime: at(3, 9), Duration: 30, Status: model.StatusScheduled, Result: model.ResultPending,
		},
	}

	for i := range seed {
		seed[i].InterviewerInfo = interviewer
		if _, err := r.CreateInterview(ctx, &seed[i]); err != nil {
			return err
		}
	}
	return nil
}
