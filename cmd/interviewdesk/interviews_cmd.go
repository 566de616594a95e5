package main

import (
	"errors"
	"fmt"

	"github.com/abhishek622/interviewdesk/internal/console"
	"github.com/abhishek622/interviewdesk/pkg/model"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var (
		f        model.Filter
		from, to string
		page     int
		pageSize int
		sortBy   string
		desc     bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List interviews with filters and pagination",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer a.close()
			ctx := cmd.Context()
			if err := a.start(ctx); err != nil {
				return err
			}
			c := a.console
			if err := c.Navigate(ctx, console.ViewInterviews); err != nil {
				return reported(err)
			}
			if from != "" || to != "" {
				f.DateRange = &model.DateRange{Start: from, End: to}
			}
			if pageSize > 0 {
				if err := c.SetPageSize(ctx, pageSize); err != nil {
					return reported(err)
				}
			}
			if err := c.SetFilter(ctx, f); err != nil {
				return reported(err)
			}
			if page > 1 {
				if err := c.SetPage(ctx, page); err != nil {
					return reported(err)
				}
			}
			if sortBy != "" {
				dir := model.SortAscending
				if desc {
					dir = model.SortDescending
				}
				if err := c.SetSort(ctx, model.Sort{Field: sortBy, Direction: dir}); err != nil {
					return reported(err)
				}
			}

			st := c.List.State()
			if err := printRows(a.out, c.PresentAll(st.Records)); err != nil {
				return err
			}
			printPage(a.out, st.Pagination)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.Status, "status", "", "Status code (scheduled, in_progress, completed, cancelled)")
	fl.StringVar(&f.Company, "company", "", "Company name contains")
	fl.StringVar(&f.Candidate, "candidate", "", "Candidate name contains")
	fl.StringVar(&from, "from", "", "Scheduled on or after (YYYY-MM-DD), needs --to")
	fl.StringVar(&to, "to", "", "Scheduled on or before (YYYY-MM-DD), needs --from")
	fl.IntVar(&page, "page", 1, "Page number")
	fl.IntVar(&pageSize, "page-size", 0, "Rows per page (defaults to UI_PAGE_SIZE)")
	fl.StringVar(&sortBy, "sort", "", "Sort field, kept locally")
	fl.BoolVar(&desc, "desc", false, "Sort descending")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one interview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.close()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.start(cmd.Context()); err != nil {
				return err
			}
			rec, err := a.console.ShowDetail(cmd.Context(), id)
			if err != nil {
				return reported(err)
			}
			return printDetail(a.out, a.console.Present(*rec))
		},
	}
}

func newCreateCmd(a *app) *cobra.Command {
	d := model.NewCreateDraft()
	var method, round string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new interview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer a.close()
			ctx := cmd.Context()
			if err := a.start(ctx); err != nil {
				return err
			}
			c := a.console
			c.OpenCreate()
			c.Dialog.UpdateDraft(func(draft *model.CreateDraft) {
				*draft = d
				draft.InterviewMethod = model.Method(method)
				draft.InterviewRound = model.Round(round)
			})
			created, err := c.SubmitCreate(ctx)
			if err != nil {
				return reported(err)
			}
			fmt.Fprintf(a.out, "id %d\n", created.ID)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&d.CandidateName, "name", "", "Candidate name")
	fl.StringVar(&d.CandidatePhone, "phone", "", "Candidate phone")
	fl.StringVar(&d.CandidateEmail, "email", "", "Candidate email")
	fl.StringVar(&d.CompanyName, "company", "", "Company name")
	fl.StringVar(&d.PositionTitle, "position", "", "Position title")
	fl.StringVar(&d.PositionDescription, "description", "", "Position description")
	fl.StringVar(&method, "method", string(model.MethodVideo), "Interview method (phone, video, onsite)")
	fl.StringVar(&round, "round", string(model.RoundFirst), "Interview round (first, second, third, final, other)")
	fl.StringVar(&d.ScheduledTime, "time", "", "Scheduled time, e.g. 2026-10-20T14:00:00")
	fl.StringVar(&d.Duration, "duration", d.Duration, "Duration in minutes")
	fl.StringVar(&d.InterviewerNotes, "notes", "", "Interviewer notes")
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var (
		status, result, feedback string
		score                    int
	)
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change status, result, score or feedback",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.close()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			fl := cmd.Flags()
			if !fl.Changed("status") && !fl.Changed("result") && !fl.Changed("score") && !fl.Changed("feedback") {
				return withCode(exitUsage, errors.New("nothing to change: pass --status, --result, --score or --feedback"))
			}
			if err := a.start(ctx); err != nil {
				return err
			}
			c := a.console
			rec, err := c.ShowDetail(ctx, id)
			if err != nil {
				return reported(err)
			}
			c.OpenEdit(*rec)
			c.Dialog.UpdateEdit(func(r *model.Interview) {
				if fl.Changed("status") {
					r.Status = model.Status(status)
				}
				if fl.Changed("result") {
					r.Result = model.Result(result)
				}
				if fl.Changed("score") {
					s := score
					r.Score = &s
				}
				if fl.Changed("feedback") {
					r.Feedback = feedback
				}
			})
			updated, err := c.SaveEdit(ctx)
			if err != nil {
				return reported(err)
			}
			if updated == nil {
				fmt.Fprintln(a.out, "no changes")
			}
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&status, "status", "", "New status code")
	fl.StringVar(&result, "result", "", "New result code")
	fl.IntVar(&score, "score", 0, "Score from 1 to 100")
	fl.StringVar(&feedback, "feedback", "", "Feedback text")
	return cmd
}

// idAction builds the single-id commands that go through a confirmation.
func idAction(a *app, use, short string, run func(a *app, cmd *cobra.Command, id int64) (bool, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.close()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.start(cmd.Context()); err != nil {
				return err
			}
			done, err := run(a, cmd, id)
			if err != nil {
				return reported(err)
			}
			if !done {
				fmt.Fprintln(a.errOut, "cancelled")
			}
			return nil
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return idAction(a, "delete <id>", "Delete an interview", func(a *app, cmd *cobra.Command, id int64) (bool, error) {
		return a.console.Delete(cmd.Context(), id)
	})
}

func newCompleteCmd(a *app) *cobra.Command {
	return idAction(a, "complete <id>", "Mark an interview completed", func(a *app, cmd *cobra.Command, id int64) (bool, error) {
		return a.console.Complete(cmd.Context(), id)
	})
}

func newUploadCmd(a *app) *cobra.Command {
	cmd := idAction(a, "upload <id> [file]", "Upload the interview recording", func(a *app, cmd *cobra.Command, id int64) (bool, error) {
		return a.console.UploadRecording(cmd.Context(), id)
	})
	cmd.Args = cobra.RangeArgs(1, 2)
	run := cmd.RunE
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) == 2 {
			a.recordingPath = args[1]
		}
		return run(cmd, args)
	}
	return cmd
}

func newUpcomingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "upcoming",
		Short: "Show the next scheduled interviews",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer a.close()
			if err := a.start(cmd.Context()); err != nil {
				return err
			}
			list, err := a.console.Upcoming(cmd.Context())
			if err != nil {
				return reported(err)
			}
			return printRows(a.out, a.console.PresentAll(list))
		},
	}
}

func newMineCmd(a *app) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "mine",
		Short: "Show interviews you conduct",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer a.close()
			if err := a.start(cmd.Context()); err != nil {
				return err
			}
			list, err := a.console.Mine(cmd.Context(), status)
			if err != nil {
				return reported(err)
			}
			return printRows(a.out, a.console.PresentAll(list))
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Only this status")
	return cmd
}
