package main

import (
	"context"
	"fmt"

	"github.com/gdugdh24/glicosaude/internal/client/api"
	"github.com/gdugdh24/glicosaude/internal/client/localstore"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type credentials struct {
	email    string
	password string
}

func (c *credentials) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&c.email, "email", "", "Account e-mail (required)")
	cmd.Flags().StringVar(&c.password, "password", "", "Account password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
}

func newRegisterCmd(get func() *app) *cobra.Command {
	var creds credentials
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			s, err := a.api.Register(cmd.Context(), creds.email, creds.password)
			if err != nil {
				return fmt.Errorf("register: %w", err)
			}
			return a.startSession(cmd.Context(), s, creds.email)
		},
	}
	creds.register(cmd)
	return cmd
}

func newLoginCmd(get func() *app) *cobra.Command {
	var creds credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and load your profile from the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			s, err := a.api.Login(cmd.Context(), creds.email, creds.password)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			return a.startSession(cmd.Context(), s, creds.email)
		},
	}
	creds.register(cmd)
	return cmd
}

func newLogoutCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out; the profile stays on this device",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if a.identity != "" {
				if err := a.api.Logout(cmd.Context()); err != nil {
					a.log.Warn("Remote logout failed", zap.Error(err))
				}
			}
			if err := a.local.ClearAuth(); err != nil {
				return fmt.Errorf("clear session: %w", err)
			}
			a.printf("Sessão encerrada.\n")
			return nil
		},
	}
}

// startSession stores the new identity and hydrates the profile for it.
func (a *app) startSession(ctx context.Context, s *api.Session, email string) error {
	auth := localstore.AuthSession{Token: s.Token, Email: email, ExpiresAt: s.ExpiresAt}
	if s.User != nil {
		auth.UserID = s.User.ID
	}
	if auth.UserID == "" {
		user, err := a.api.WithToken(s.Token).Me(ctx)
		if err != nil {
			return fmt.Errorf("resolve user: %w", err)
		}
		auth.UserID = user.ID
	}
	if err := a.local.SaveAuth(auth); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	a.signIn(auth.Token, auth.UserID)

	sess := a.session(ctx)
	a.printf("Conectado como %s.\n", email)
	if p := sess.Profile(); p.IsComplete() {
		a.printf("Perfil de %s carregado.\n", p.Name)
	} else {
		a.printf("Complete o onboarding: glicosaude onboarding show\n")
	}
	return nil
}
