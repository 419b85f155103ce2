package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gdugdh24/glicosaude/internal/client/api"
	"github.com/gdugdh24/glicosaude/internal/client/localstore"
	"github.com/gdugdh24/glicosaude/internal/client/notify"
	"github.com/gdugdh24/glicosaude/internal/client/profilesync"
	"github.com/gdugdh24/glicosaude/internal/client/readings"
	"github.com/gdugdh24/glicosaude/internal/client/session"
	"github.com/gdugdh24/glicosaude/internal/config"
	"github.com/gdugdh24/glicosaude/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app is everything a command needs, built once per invocation.
type app struct {
	cfg      *config.ClientConfig
	log      *zap.Logger
	local    *localstore.ProfileStore
	api      *api.Client
	notifier notify.Notifier
	out      io.Writer
	// identity is the signed-in user id; empty means anonymous.
	identity string
	now      func() time.Time
}

var flagKeys = map[string]string{
	"API_URL":   "api-url",
	"STATE_DIR": "state-dir",
	"TOKEN":     "token",
	"LOG_LEVEL": "log-level",
}

func newApp(cmd *cobra.Command) (*app, error) {
	v := viper.New()
	for key, name := range flagKeys {
		if err := v.BindPFlag(key, cmd.Root().PersistentFlags().Lookup(name)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	cfg, err := config.LoadClient(v)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, "console")
	if err != nil {
		return nil, err
	}

	store, err := localstore.NewFileStore(cfg.StateDir)
	if err != nil {
		return nil, fmt.Errorf("open local state: %w", err)
	}

	a := &app{
		cfg:      cfg,
		log:      log,
		local:    localstore.NewProfileStore(store, log),
		api:      api.New(cfg.APIURL, "", cfg.HTTPTimeout),
		notifier: notify.NewTerminal(cmd.OutOrStdout()),
		out:      cmd.OutOrStdout(),
		now:      time.Now,
	}
	if err := a.resolveIdentity(cmd.Context()); err != nil {
		return nil, err
	}
	return a, nil
}

// resolveIdentity prefers the stored session. An explicit token that does
// not match it is looked up on the backend.
func (a *app) resolveIdentity(ctx context.Context) error {
	token := a.cfg.Token
	if auth, ok := a.local.Auth(); ok && (token == "" || token == auth.Token) {
		if !auth.ExpiresAt.IsZero() && a.now().After(auth.ExpiresAt) {
			a.log.Info("Stored session expired, continuing anonymously", zap.String("user_id", auth.UserID))
			return nil
		}
		a.signIn(auth.Token, auth.UserID)
		return nil
	}
	if token == "" {
		return nil
	}

	user, err := a.api.WithToken(token).Me(ctx)
	if err != nil {
		return fmt.Errorf("resolve token: %w", err)
	}
	a.signIn(token, user.ID)
	return nil
}

func (a *app) signIn(token, userID string) {
	a.api = a.api.WithToken(token)
	a.identity = userID
}

func (a *app) profileSync() *profilesync.Sync {
	return profilesync.New(a.local, a.api, a.log)
}

// session hydrates the profile for the current identity.
func (a *app) session(ctx context.Context) *session.ProfileSession {
	s := session.New(a.profileSync(), a.log)
	s.SetIdentity(ctx, a.identity)
	return s
}

func (a *app) readings() *readings.Client {
	return readings.New(a.api, a.identity, a.notifier, a.log)
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
