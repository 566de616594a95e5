package main

import (
	"fmt"

	"github.com/abhishek622/interviewdesk/internal/cache"
	"github.com/abhishek622/interviewdesk/pkg/model"
	"github.com/spf13/cobra"
)

func newSessionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect or seed the locally stored session",
	}
	cmd.AddCommand(newSessionSetCmd(a), newSessionShowCmd(a), newSessionClearCmd(a))
	return cmd
}

func newSessionSetCmd(a *app) *cobra.Command {
	var csrf string
	var p model.Profile
	cmd := &cobra.Command{
		Use:   "set <sessionid>",
		Short: "Store a session cookie obtained from the web sign-in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.close()
			if err := a.open(); err != nil {
				return err
			}
			ctx := cmd.Context()
			m := a.console.Session()
			if err := m.SaveCookies(ctx, args[0], csrf); err != nil {
				return err
			}
			if p.Username != "" {
				if err := m.SaveProfile(ctx, &p); err != nil {
					return err
				}
			}
			fmt.Fprintln(a.out, "session stored")
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&csrf, "csrf", "", "Anti-forgery token, fetched on first use when empty")
	fl.StringVar(&p.Username, "username", "", "User name to greet")
	fl.StringVar(&p.FirstName, "first-name", "", "First name")
	fl.StringVar(&p.LastName, "last-name", "", "Last name")
	fl.StringVar(&p.Email, "email", "", "Email")
	return cmd
}

func newSessionShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show what is stored locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer a.close()
			if err := a.open(); err != nil {
				return err
			}
			ctx := cmd.Context()
			if a.cfg.Session.Backend == "redis" {
				rdb := cache.NewRedisClient(a.cfg.Redis.Addr, a.cfg.Redis.Password, a.cfg.Redis.DB)
				defer rdb.Close()
				if err := cache.Ping(ctx, rdb); err != nil {
					return withCode(exitServer, fmt.Errorf("redis %s: %w", a.cfg.Redis.Addr, err))
				}
			}
			st, err := a.console.Session().Load(ctx)
			if err != nil {
				return err
			}

			tw := newTable(a.out)
			fmt.Fprintf(tw, "Backend:\t%s\n", a.cfg.Session.Backend)
			fmt.Fprintf(tw, "Encrypted:\t%t\n", a.cfg.Session.Secret != "")
			fmt.Fprintf(tw, "Signed in:\t%t\n", st.Authenticated())
			fmt.Fprintf(tw, "CSRF token:\t%t\n", st.CSRFToken != "")
			fmt.Fprintf(tw, "User:\t%s\n", st.Profile.DisplayName())
			return tw.Flush()
		},
	}
}

func newSessionClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget the stored session without contacting the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer a.close()
			if err := a.open(); err != nil {
				return err
			}
			if err := a.console.Session().Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "session cleared")
			return nil
		},
	}
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out on the server and forget the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer a.close()
			if err := a.open(); err != nil {
				return err
			}
			ctx := cmd.Context()
			st, err := a.console.Session().Load(ctx)
			if err != nil {
				return err
			}
			client := a.console.Client()
			client.Restore(st.Token, st.CSRFToken)
			if err := client.EnsureCSRF(ctx); err != nil {
				a.logger.Sugar().Warnw("csrf token unavailable", "err", err)
			}
			a.console.Logout(ctx)
			return nil
		},
	}
}
