package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jaekwang-park/taskapp/internal/model"
	"github.com/jaekwang-park/taskapp/internal/notify"
)

func credentialFlags(cmd *cobra.Command, creds *model.Credentials) {
	cmd.Flags().StringVar(&creds.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
}

func registerCmd(a *App) *cobra.Command {
	var creds model.Credentials
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and keep its session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds.Email = strings.TrimSpace(creds.Email)
			res := a.client.RegisterUser(cmd.Context(), creds)
			if !res.OK() {
				a.reporter.Failure(notify.MsgAuthFailed, res.Message)
				return errReported
			}
			if res.Data.Token != "" {
				if err := a.session.SaveToken(cmd.Context(), res.Data.Token); err != nil {
					return fmt.Errorf("failed to save session: %w", err)
				}
			}
			a.reporter.Success(notify.MsgRegistered, nil)
			return nil
		},
	}
	cmd.Flags().StringVar(&creds.Name, "name", "", "Display name")
	credentialFlags(cmd, &creds)
	return cmd
}

func loginCmd(a *App) *cobra.Command {
	var creds model.Credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds.Email = strings.TrimSpace(creds.Email)
			res := a.client.LoginUser(cmd.Context(), creds)
			if !res.OK() || res.Data.Token == "" {
				msg := res.Message
				if msg == "" {
					msg = res.Data.Message
				}
				a.reporter.Failure(notify.MsgAuthFailed, msg)
				return errReported
			}
			if err := a.session.SaveToken(cmd.Context(), res.Data.Token); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}
			a.reporter.Success(notify.MsgLoggedIn, map[string]any{"Email": creds.Email})
			return nil
		},
	}
	credentialFlags(cmd, &creds)
	return cmd
}

func logoutCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}
			a.reporter.Success(notify.MsgLoggedOut, nil)
			return nil
		},
	}
}

func whoamiCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: a.authed(func(cmd *cobra.Command, args []string) error {
			claims, err := a.session.Claims(cmd.Context())
			if err != nil {
				fmt.Fprintln(a.out, "Logged in.")
				return nil
			}
			line := "Logged in"
			if claims.Subject != "" {
				line += " as user " + claims.Subject
			}
			if claims.ExpiresAt != nil {
				line += ", session expires " + claims.ExpiresAt.Local().Format(time.DateTime)
			}
			fmt.Fprintln(a.out, line+".")
			return nil
		}),
	}
}
