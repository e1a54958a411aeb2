// Package main provides the CLI entrypoint for bikeshare.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/bikeshare/internal/browse"
	"github.com/verte-zerg/bikeshare/internal/config"
	"github.com/verte-zerg/bikeshare/internal/dataset"
	"github.com/verte-zerg/bikeshare/internal/explore"
	"github.com/verte-zerg/bikeshare/internal/logging"
	"github.com/verte-zerg/bikeshare/internal/model"
	"github.com/verte-zerg/bikeshare/internal/prompt"
	"github.com/verte-zerg/bikeshare/internal/stats"
	"github.com/verte-zerg/bikeshare/internal/store"
)

var (
	flagDataDir  string
	flagDBPath   string
	flagPageSize int
	flagLogLevel string

	selCity  string
	selMonth string
	selDay   string

	reportXLSX string

	historyCity string
	historyLast int
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bikeshare",
		Short:         "Explore US bikeshare trip data",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runExploreCmd,
	}

	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", config.DefaultDataDir, "directory holding the city CSV files")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "history database path (default: XDG data dir)")
	rootCmd.PersistentFlags().IntVar(&flagPageSize, "page-size", config.DefaultPageSize, "raw rows per page")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCitiesCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newBrowseCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

// appEnv bundles what every command needs after settings are resolved.
type appEnv struct {
	settings model.Settings
	log      *logrus.Logger
	loader   *dataset.Loader
}

func loadAppEnv(cmd *cobra.Command) (appEnv, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return appEnv{}, fmt.Errorf("failed to load config: %w", err)
	}
	envCfg, err := config.LoadEnv()
	if err != nil {
		return appEnv{}, err
	}
	settings, err := config.Resolve(fileCfg, envCfg)
	if err != nil {
		return appEnv{}, fmt.Errorf("failed to resolve config: %w", err)
	}
	applyStringFlag(cmd, "data-dir", &settings.DataDir, flagDataDir)
	applyStringFlag(cmd, "db", &settings.DBPath, flagDBPath)
	applyIntFlag(cmd, "page-size", &settings.PageSize, flagPageSize)
	applyStringFlag(cmd, "log-level", &settings.LogLevel, flagLogLevel)
	if err := config.Validate(settings); err != nil {
		return appEnv{}, err
	}

	log, err := logging.New(settings.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return appEnv{}, err
	}
	loader := dataset.NewLoader(settings.DataDir, config.NewCityTable(settings.Cities), log)
	return appEnv{settings: settings, log: log, loader: loader}, nil
}

func runExploreCmd(cmd *cobra.Command, _ []string) error {
	e, err := loadAppEnv(cmd)
	if err != nil {
		return err
	}

	var history explore.History
	st, err := store.Open(e.settings.DBPath)
	if err != nil {
		e.log.WithError(err).WithField("path", e.settings.DBPath).Warn("history disabled: failed to open db")
	} else {
		history = st
		defer func() {
			if cerr := st.Close(); cerr != nil {
				e.log.WithError(cerr).Warn("failed to close db")
			}
		}()
	}

	console := prompt.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout())
	controller := explore.NewController(console, e.loader, history, e.settings.PageSize, e.log)
	if err := controller.Run(commandContext(cmd)); err != nil {
		return fmt.Errorf("failed to explore data: %w", err)
	}
	return nil
}

func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&selCity, "city", "", "city: chicago, new york city or washington")
	cmd.Flags().StringVar(&selMonth, "month", model.AllFilter, "month january..june or all")
	cmd.Flags().StringVar(&selDay, "day", model.AllFilter, "day of week or all")
	_ = cmd.MarkFlagRequired("city")
}

func loadSelection(cmd *cobra.Command) (appEnv, model.Selection, *dataset.Dataset, error) {
	sel, err := model.ParseSelection(selCity, selMonth, selDay)
	if err != nil {
		return appEnv{}, model.Selection{}, nil, err
	}
	e, err := loadAppEnv(cmd)
	if err != nil {
		return appEnv{}, model.Selection{}, nil, err
	}
	ds, err := e.loader.Load(commandContext(cmd), sel)
	if err != nil {
		return appEnv{}, model.Selection{}, nil, err
	}
	return e, sel, ds, nil
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print statistics for one selection",
		Args:  cobra.NoArgs,
		RunE:  runReportCmd,
	}
	addSelectionFlags(cmd)
	cmd.Flags().StringVar(&reportXLSX, "xlsx", "", "also write the report to an Excel workbook")
	return cmd
}

func runReportCmd(cmd *cobra.Command, _ []string) error {
	e, sel, ds, err := loadSelection(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "Selection: %s (%d rows)\n", sel, ds.Len()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.NewRenderer(out).All(ds); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	if reportXLSX == "" {
		return nil
	}
	report, err := stats.BuildReport(sel, ds)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	if err := stats.WriteXLSX(reportXLSX, report); err != nil {
		return err
	}
	e.log.WithField("path", reportXLSX).Info("wrote workbook")
	if _, err := fmt.Fprintf(out, "Wrote %s\n", reportXLSX); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse filtered trips in a table",
		Args:  cobra.NoArgs,
		RunE:  runBrowseCmd,
	}
	addSelectionFlags(cmd)
	return cmd
}

func runBrowseCmd(cmd *cobra.Command, _ []string) error {
	_, sel, ds, err := loadSelection(cmd)
	if err != nil {
		return err
	}
	program := tea.NewProgram(browse.NewModel(ds, sel, browse.DefaultPageSize), tea.WithAltScreen(), tea.WithContext(commandContext(cmd)))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run browser: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past explorations",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyCity, "city", "", "only show explorations of this city")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to the last N explorations")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	city := ""
	if strings.TrimSpace(historyCity) != "" {
		c, ok := model.ParseCity(historyCity)
		if !ok {
			return fmt.Errorf("unknown city %q (available: %s)", historyCity, strings.Join(model.Cities, ", "))
		}
		city = c
	}
	e, err := loadAppEnv(cmd)
	if err != nil {
		return err
	}
	st, err := store.Open(e.settings.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			e.log.WithError(cerr).Warn("failed to close db")
		}
	}()

	list, err := st.ListExplorations(commandContext(cmd), city, historyLast)
	if err != nil {
		return fmt.Errorf("failed to list explorations: %w", err)
	}
	return writeHistory(cmd.OutOrStdout(), list)
}

func writeHistory(w io.Writer, list []model.Exploration) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No explorations recorded yet.")
		return err
	}
	headers := []string{"ID", "Started", "City", "Month", "Day", "Rows", "Pages", "Duration"}
	rows := make([][]string, 0, len(list))
	for _, e := range list {
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			e.StartedAt.Local().Format("2006-01-02 15:04"),
			e.City,
			e.Month,
			e.Day,
			strconv.Itoa(e.Rows),
			strconv.Itoa(e.PagesViewed),
			e.EndedAt.Sub(e.StartedAt).Round(time.Second).String(),
		})
	}
	for _, line := range stats.FormatTable(headers, rows, map[int]bool{0: true, 5: true, 6: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func newCitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cities",
		Short: "List configured cities and their data files",
		Args:  cobra.NoArgs,
		RunE:  runCitiesCmd,
	}
}

func runCitiesCmd(cmd *cobra.Command, _ []string) error {
	e, err := loadAppEnv(cmd)
	if err != nil {
		return err
	}
	headers := []string{"City", "File", "Demographics", "Status"}
	var rows [][]string
	for _, src := range config.NewCityTable(e.settings.Cities).Sources() {
		path, err := e.loader.Path(src.Name)
		if err != nil {
			return err
		}
		status := "ok"
		if _, err := os.Stat(path); err != nil {
			status = "missing"
			if !os.IsNotExist(err) {
				status = "unreadable"
			}
		}
		demographics := "no"
		if src.Demographics {
			demographics = "yes"
		}
		rows = append(rows, []string{src.Name, path, demographics, status})
	}
	for _, line := range stats.FormatTable(headers, rows, nil) {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func applyStringFlag(cmd *cobra.Command, name string, target *string, value string) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func applyIntFlag(cmd *cobra.Command, name string, target *int, value int) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# bikeshare configuration
# Uncomment a value to enable it. BIKESHARE_* variables and CLI flags override config values.

[data]
# dir = %q                # Directory holding the city CSV files
# page-size = %d          # Raw rows shown per page
# db-path = %q            # History database

[log]
# level = %q              # trace, debug, info, warn, error

# [cities."chicago"]
# file = "chicago.csv"     # Relative to [data] dir unless absolute
# demographics = true      # Source has Gender and Birth Year columns
`,
		config.DefaultDataDir,
		config.DefaultPageSize,
		config.DefaultDBPath(),
		config.DefaultLogLevel,
	)
}
