package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	charmLog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/notemancy-pkm/kantui/internal/adapters/storage/boardfile"
	"github.com/notemancy-pkm/kantui/internal/app"
	"github.com/notemancy-pkm/kantui/internal/config"
	"github.com/notemancy-pkm/kantui/internal/platform"
	"github.com/notemancy-pkm/kantui/internal/tui"
)

// version stores a package-level helper value.
var version = "dev"

// program represents program data used by this package.
type program interface {
	Run() (tea.Model, error)
}

// programFactory stores a package-level helper value.
var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m)
}

// main handles main.
func main() {
	if err := fang.Execute(context.Background(), newRootCmd(os.Stdout, os.Stderr), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

// rootOptions holds the flag state shared by the root command and its
// subcommands.
type rootOptions struct {
	configPath string
	boardsDir  string
	appName    string
	devMode    bool
}

// newRootCmd builds the kantui command tree.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	opts := &rootOptions{appName: "kantui", devMode: version == "dev"}
	if envApp := strings.TrimSpace(os.Getenv("KANTUI_APP_NAME")); envApp != "" {
		opts.appName = envApp
	}
	if envDev, ok := parseBoolEnv("KANTUI_DEV_MODE"); ok {
		opts.devMode = envDev
	}

	root := &cobra.Command{
		Use:           "kantui [board]",
		Short:         "Terminal kanban board",
		Long:          "kantui is a keyboard-driven kanban board that stores each board as a plain text file. With a board name it opens that board directly, creating it when missing.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts, stderr, strings.Join(args, " "))
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config TOML")
	root.PersistentFlags().StringVar(&opts.boardsDir, "dir", "", "boards directory (overrides config)")
	root.PersistentFlags().StringVar(&opts.appName, "app", opts.appName, "application name for config/data path resolution")
	root.PersistentFlags().BoolVar(&opts.devMode, "dev", opts.devMode, "use dev mode paths (<app>-dev)")

	root.AddCommand(newBoardsCmd(opts, stdout))
	root.AddCommand(newPathsCmd(opts, stdout))
	return root
}

// newBoardsCmd lists the boards in the configured directory.
func newBoardsCmd(opts *rootOptions, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "boards",
		Short: "List available boards",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := resolveConfig(opts)
			if err != nil {
				return err
			}
			store := boardfile.NewStore(cfg.Boards.Dir)
			names, err := store.Scan()
			if err != nil {
				return fmt.Errorf("scan boards: %w", err)
			}
			count := 0
			for _, name := range names {
				if boardfile.IsCreateNew(name) {
					continue
				}
				_, _ = fmt.Fprintln(stdout, name)
				count++
			}
			if count == 0 {
				_, _ = fmt.Fprintln(stdout, "no boards found in", cfg.Boards.Dir)
			}
			return nil
		},
	}
}

// newPathsCmd prints the resolved platform paths.
func newPathsCmd(opts *rootOptions, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print resolved config and data paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, cfg, err := resolveConfig(opts)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(stdout, "app: %s\n", opts.appName)
			_, _ = fmt.Fprintf(stdout, "dev_mode: %t\n", opts.devMode)
			_, _ = fmt.Fprintf(stdout, "config: %s\n", resolveConfigPath(opts, paths))
			_, _ = fmt.Fprintf(stdout, "data_dir: %s\n", paths.DataDir)
			_, _ = fmt.Fprintf(stdout, "boards_dir: %s\n", cfg.Boards.Dir)
			return nil
		},
	}
}

// resolveConfig resolves platform paths and the effective configuration
// from flags, environment, and the config file.
func resolveConfig(opts *rootOptions) (platform.Paths, config.Config, error) {
	paths, err := platform.DefaultPathsWithOptions(platform.Options{
		AppName: opts.appName,
		DevMode: opts.devMode,
	})
	if err != nil {
		return platform.Paths{}, config.Config{}, err
	}

	configPath := resolveConfigPath(opts, paths)
	cfg, err := config.Load(configPath, config.Default(paths.BoardsDir))
	if err != nil {
		return platform.Paths{}, config.Config{}, fmt.Errorf("load config %q: %w", configPath, err)
	}

	dir := strings.TrimSpace(opts.boardsDir)
	if dir == "" {
		dir = strings.TrimSpace(os.Getenv("KANTUI_DIR"))
	}
	if dir != "" {
		cfg.Boards.Dir = dir
	}
	return paths, cfg, nil
}

// resolveConfigPath resolves the config file path from the flag, the
// environment, and the platform default, in that order.
func resolveConfigPath(opts *rootOptions, paths platform.Paths) string {
	if strings.TrimSpace(opts.configPath) != "" {
		return opts.configPath
	}
	if envPath := strings.TrimSpace(os.Getenv("KANTUI_CONFIG")); envPath != "" {
		return envPath
	}
	return paths.ConfigPath
}

// runTUI runs the board program loop. A non-empty boardName skips board
// selection and opens that board directly, creating it when missing.
func runTUI(opts *rootOptions, stderr io.Writer, boardName string) error {
	paths, cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	logger, err := newRuntimeLogger(stderr, paths, opts.appName, opts.devMode, cfg.Logging, time.Now)
	if err != nil {
		return fmt.Errorf("configure runtime logger: %w", err)
	}
	// Keep TUI rendering clean: runtime logs stay in the dev-file sink while the board is active.
	logger.SetConsoleEnabled(false)
	logger.RouteDefaultLogger()
	defer func() {
		if closeErr := logger.Close(); closeErr != nil && logger.shouldLogToSink(logger.consoleSink) {
			_, _ = fmt.Fprintf(stderr, "warning: close runtime log sink: %v\n", closeErr)
		}
	}()

	logger.Info("startup configuration resolved", "app", opts.appName, "dev_mode", opts.devMode)
	logger.Debug("runtime paths resolved", "config_path", resolveConfigPath(opts, paths), "data_dir", paths.DataDir, "boards_dir", cfg.Boards.Dir)
	if devPath := logger.DevLogPath(); devPath != "" {
		logger.Info("dev file logging enabled", "path", devPath)
	}

	store := boardfile.NewStore(cfg.Boards.Dir)
	board := app.New(cfg.Board.DefaultTitle, store, app.WithSeedTasks(cfg.Board.SeedTasks))
	if name := strings.TrimSpace(boardName); name != "" {
		board.Title = name
		if err := board.InitializeStorage(); err != nil {
			logger.Warn("board persistence unavailable", "board", name, "err", err)
		}
		board.InputMode = app.ModeNormal
	}
	m := tui.NewModel(board, tui.WithDefaultBoardTitle(cfg.Board.DefaultTitle))

	logger.Info("starting tui program loop")
	if _, err := programFactory(m).Run(); err != nil {
		logger.Error("tui program terminated with error", "err", err)
		return fmt.Errorf("run tui program: %w", err)
	}
	logger.Info("tui program loop complete")
	return nil
}

// parseBoolEnv parses input into a normalized form.
func parseBoolEnv(name string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

// runtimeLogger fans log events to a styled console sink and an optional dev-file sink.
type runtimeLogger struct {
	sinks          []*charmLog.Logger
	consoleSink    *charmLog.Logger
	consoleEnabled bool
	level          charmLog.Level
	logFile        io.Writer
	closeFile      func() error
	devLog         string
}

// newRuntimeLogger configures runtime log sinks from CLI/config state.
func newRuntimeLogger(stderr io.Writer, paths platform.Paths, appName string, devMode bool, cfg config.LoggingConfig, now func() time.Time) (*runtimeLogger, error) {
	levelName := strings.TrimSpace(cfg.Level)
	if levelName == "" {
		levelName = "info"
	}
	level, err := charmLog.ParseLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("parse logging level %q: %w", levelName, err)
	}

	if now == nil {
		now = time.Now
	}
	if stderr == nil {
		stderr = io.Discard
	}

	consoleLogger := charmLog.NewWithOptions(stderr, charmLog.Options{
		Level:           level,
		Prefix:          appName,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmLog.TextFormatter,
	})

	logger := &runtimeLogger{
		sinks:          []*charmLog.Logger{consoleLogger},
		consoleSink:    consoleLogger,
		consoleEnabled: true,
		level:          level,
	}
	if !devMode {
		return logger, nil
	}

	devLogPath := strings.TrimSpace(cfg.DevFile)
	if devLogPath == "" {
		devLogPath = filepath.Join(paths.DataDir, "log", fmt.Sprintf("%s-%s.log", appName, now().UTC().Format("20060102")))
	}
	if err := config.EnsureConfigDir(devLogPath); err != nil {
		return nil, fmt.Errorf("create dev log dir: %w", err)
	}
	logFile, err := os.OpenFile(devLogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open dev log file: %w", err)
	}

	// Keep file output parseable and unstyled while preserving styled console logs.
	fileLogger := charmLog.NewWithOptions(logFile, charmLog.Options{
		Level:           level,
		Prefix:          appName,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmLog.LogfmtFormatter,
	})
	logger.sinks = append(logger.sinks, fileLogger)
	logger.logFile = logFile
	logger.closeFile = logFile.Close
	logger.devLog = devLogPath
	return logger, nil
}

// RouteDefaultLogger points the package-level logger used inside the app
// layer at the dev-file sink, or discards it when no sink is open. The
// terminal must never receive stray log lines while the board renders.
func (l *runtimeLogger) RouteDefaultLogger() {
	if l == nil {
		return
	}
	charmLog.SetLevel(l.level)
	charmLog.SetFormatter(charmLog.LogfmtFormatter)
	if l.logFile != nil {
		charmLog.SetOutput(l.logFile)
		return
	}
	charmLog.SetOutput(io.Discard)
}

// DevLogPath returns the active dev log file path.
func (l *runtimeLogger) DevLogPath() string {
	if l == nil {
		return ""
	}
	return l.devLog
}

// Close closes the optional dev-file sink.
func (l *runtimeLogger) Close() error {
	if l == nil || l.closeFile == nil {
		return nil
	}
	return l.closeFile()
}

// SetConsoleEnabled toggles whether the console sink receives runtime events.
func (l *runtimeLogger) SetConsoleEnabled(enabled bool) {
	if l == nil {
		return
	}
	l.consoleEnabled = enabled
}

// shouldLogToSink reports whether one sink should receive runtime output.
func (l *runtimeLogger) shouldLogToSink(sink *charmLog.Logger) bool {
	if l == nil {
		return false
	}
	if sink == nil {
		return false
	}
	if sink == l.consoleSink && !l.consoleEnabled {
		return false
	}
	return true
}

// Debug logs a debug event to all configured sinks.
func (l *runtimeLogger) Debug(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	for _, sink := range l.sinks {
		if !l.shouldLogToSink(sink) {
			continue
		}
		sink.Debug(msg, keyvals...)
	}
}

// Info logs an informational event to all configured sinks.
func (l *runtimeLogger) Info(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	for _, sink := range l.sinks {
		if !l.shouldLogToSink(sink) {
			continue
		}
		sink.Info(msg, keyvals...)
	}
}

// Warn logs a warning event to all configured sinks.
func (l *runtimeLogger) Warn(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	for _, sink := range l.sinks {
		if !l.shouldLogToSink(sink) {
			continue
		}
		sink.Warn(msg, keyvals...)
	}
}

// Error logs an error event to all configured sinks.
func (l *runtimeLogger) Error(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	for _, sink := range l.sinks {
		if !l.shouldLogToSink(sink) {
			continue
		}
		sink.Error(msg, keyvals...)
	}
}
