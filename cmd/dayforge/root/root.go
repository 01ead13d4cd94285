package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/hrzp/dayforge/internal/app"
	"github.com/hrzp/dayforge/internal/clock"
	"github.com/hrzp/dayforge/internal/cloud"
	"github.com/hrzp/dayforge/internal/credential"
	"github.com/hrzp/dayforge/internal/migrate"
	"github.com/hrzp/dayforge/internal/model"
	"github.com/hrzp/dayforge/internal/profile"
	"github.com/hrzp/dayforge/internal/source"
	"github.com/hrzp/dayforge/internal/source/mailbox"
	"github.com/hrzp/dayforge/internal/store"
)

const Version = "1.0.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:           "dayforge",
	Short:         "dayforge · a habit and trait tracker for your terminal",
	Long:          "Dayforge tracks daily tasks, skills, and Big Five traits, turning follow-through into XP and broken promises into penalties.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(
		&configPath, "config", "",
		"config file (default ~/.config/dayforge/config.yaml)",
	)

	rootCmd.AddCommand(
		newExportCmd(),
		newImportCmd(),
		newRestoreCmd(),
		newSyncCmd(),
		newStatsCmd(),
		newTemplateCmd(),
		newWipeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// session bundles everything a command needs after bootstrap.
type session struct {
	cfg     *model.AppConfig
	store   *store.SnapshotStore
	service *profile.Service
	mailbox source.Source
	log     *slog.Logger
}

// openSession runs the startup sequence shared by the TUI and all
// subcommands: config, snapshot store, load or create the profile,
// reconcile with the cloud copy, then settle any pending day
// transition before anything renders or prints.
func openSession(ctx context.Context) (*session, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	log := openLogger(cfg.DataDir)
	clk := clock.System{}

	st, err := store.Open(filepath.Join(cfg.DataDir, "dayforge.db"))
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = st.Close() }

	p, err := loadProfile(ctx, st, cfg, clk, log)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	coord := buildCoordinator(cfg, log)
	p, outcome := coord.Reconcile(ctx, p)
	log.Info("reconciled", "outcome", int(outcome))

	svc := profile.NewService(p, st, coord, clk, log)

	result := svc.RunDailyRollover()
	if result.Ran {
		log.Info("rollover",
			"penalized", result.PenalizedTaskCount,
			"xp_loss", result.TotalXPLoss,
		)
	}

	// RunDailyRollover persists when it changed anything. The only
	// state still unsaved here is a freshly adopted remote snapshot;
	// a launch that changed nothing must not bump the ordering key.
	if outcome == cloud.OutcomeRemote && !result.Ran {
		svc.Save()
	}

	return &session{
		cfg:     cfg,
		store:   st,
		service: svc,
		mailbox: buildMailbox(cfg),
		log:     log,
	}, cleanup, nil
}

func runTUI() error {
	ctx := context.Background()
	s, cleanup, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	program := tea.NewProgram(
		app.New(s.service, s.mailbox),
		tea.WithAltScreen(),
	)
	_, err = program.Run()
	return err
}

func loadConfig() (*model.AppConfig, error) {
	path := configPath
	if path == "" {
		path = model.DefaultConfigPath()
	}
	return model.LoadConfig(path)
}

// openLogger writes structured logs to a file in the data dir; the
// terminal belongs to the TUI. Falls back to discard on any failure.
func openLogger(dataDir string) *slog.Logger {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	f, err := os.OpenFile(
		filepath.Join(dataDir, "dayforge.log"),
		os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600,
	)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(f, nil))
}

// loadProfile reads the primary snapshot, falling back to a fresh
// profile when it is missing or unreadable. The backup key is never
// read here; recovery from it is an explicit "restore" action, not
// something startup decides on its own.
func loadProfile(
	ctx context.Context,
	st *store.SnapshotStore,
	cfg *model.AppConfig,
	clk clock.Clock,
	log *slog.Logger,
) (*model.Profile, error) {
	payload, err := st.Load(ctx)
	if err == nil {
		p, applyErr := migrate.Apply(payload)
		if applyErr == nil {
			return p, nil
		}
		log.Warn("primary snapshot unreadable, starting fresh; run restore to recover the backup", "err", applyErr)
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Warn("primary snapshot load failed", "err", err)
	}

	return model.DefaultProfile(cfg.UserName, clk.Today()), nil
}

// buildCoordinator wires the cloud client when sync is enabled and an
// API key is stored; otherwise returns a disabled coordinator that
// degrades every call to local-only.
func buildCoordinator(cfg *model.AppConfig, log *slog.Logger) *cloud.Coordinator {
	if !cfg.Cloud.Enabled || cfg.Cloud.BaseURL == "" || cfg.Cloud.UserID == "" {
		return cloud.NewCoordinator(nil, "", log)
	}

	apiKey, err := credential.Get(credential.KeyCloudAPI)
	if err != nil || apiKey == "" {
		log.Warn("cloud sync enabled but no API key in keyring")
		return cloud.NewCoordinator(nil, "", log)
	}

	client := cloud.NewClient(cfg.Cloud.BaseURL, apiKey)
	return cloud.NewCoordinator(client, cfg.Cloud.UserID, log)
}

// buildMailbox wires the IMAP request source when configured.
func buildMailbox(cfg *model.AppConfig) source.Source {
	mb := cfg.Mailbox
	if !mb.Enabled || mb.Host == "" || mb.Username == "" {
		return nil
	}

	password, err := credential.Get(credential.KeyMailboxPassword)
	if err != nil || password == "" {
		return nil
	}

	return mailbox.NewAdapter(mb.Host, mb.Port, mb.Username, password, mb.TLS)
}

// today returns the current civil date for commands that need one.
func today() string {
	return clock.System{}.Today()
}

// withTimeout wraps a background context for one-shot CLI commands.
func withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}
