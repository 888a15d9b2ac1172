// Package cmd provides the entrypoint and CLI command configuration for the
// ethercheck application.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"runtime/pprof"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ethercheck/ethercheck/internal/chart"
	"github.com/ethercheck/ethercheck/internal/devtools"
	"github.com/ethercheck/ethercheck/internal/export"
	"github.com/ethercheck/ethercheck/internal/logging"
	"github.com/ethercheck/ethercheck/internal/monitor"
	"github.com/ethercheck/ethercheck/internal/ui"
	"github.com/ethercheck/ethercheck/internal/ui/components/plot"
	"github.com/ethercheck/ethercheck/internal/ui/views"
)

const apiEnv = "ETHERCHECK_API"

// options holds the flags shared by the dashboard and the export command.
type options struct {
	api      string
	preset   string
	rooms    string
	timeout  time.Duration
	logFile  string
	logLevel string
}

func buildVersion(version, commit, date, builtBy string) string {
	result := version
	if commit != "" {
		result = fmt.Sprintf("%s\ncommit: %s", result, commit)
	}
	if date != "" {
		result = fmt.Sprintf("%s\nbuilt at: %s", result, date)
	}
	if builtBy != "" {
		result = fmt.Sprintf("%s\nbuilt by: %s", result, builtBy)
	}
	result = fmt.Sprintf("%s\ngoos: %s\ngoarch: %s", result, runtime.GOOS, runtime.GOARCH)
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Sum != "" {
		result = fmt.Sprintf("%s\nmodule version: %s, checksum: %s", result, info.Main.Version, info.Main.Sum)
	}

	return result
}

// Execute initializes and runs the ethercheck terminal application.
func Execute(version, commit, date, builtBy string) error {
	rootCmd := newRootCmd()
	rootCmd.Version = buildVersion(version, commit, date, builtBy)
	rootCmd.SetVersionTemplate(`ethercheck {{printf "version %s\n" .Version}}`)

	return fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(rootCmd.Version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	)
}

func newRootCmd() *cobra.Command {
	var opts options
	rootCmd := &cobra.Command{
		Use:   "ethercheck",
		Short: "A terminal dashboard for network packet loss.",
		Long:  "A terminal dashboard for per-room network packet loss reported by the monitoring API.",
		Args:  cobra.NoArgs,
	}

	addCommonFlags(rootCmd.PersistentFlags(), &opts)

	rootCmd.Flags().String(
		"cpuprofile",
		"",
		"write cpu profile to file",
	)
	rootCmd.Flags().Duration(
		"refresh",
		0,
		"refresh the graph on this interval (0 disables)",
	)
	rootCmd.Flags().Float64(
		"cell-width",
		plot.DefaultCellWidth,
		"terminal cell width in pixels, for hover distances",
	)
	rootCmd.Flags().Float64(
		"cell-height",
		plot.DefaultCellHeight,
		"terminal cell height in pixels, for hover distances",
	)
	rootCmd.Flags().String(
		"export-dir",
		".",
		"directory for images exported from the dashboard",
	)
	rootCmd.Flags().BoolP(
		"help",
		"h",
		false,
		"help for ethercheck",
	)
	rootCmd.SetGlobalNormalizationFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		switch name {
		case "url":
			name = "api"
		case "period":
			name = "range"
		}
		return pflag.NormalizedName(name)
	})

	rootCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return runDashboard(cmd, opts)
	}
	rootCmd.AddCommand(newExportCmd(&opts))

	return rootCmd
}

func addCommonFlags(flags *pflag.FlagSet, opts *options) {
	flags.StringVar(
		&opts.api,
		"api",
		envOr(apiEnv, monitor.DefaultBaseURL),
		"monitoring API base URL (env "+apiEnv+")",
	)
	flags.StringVar(
		&opts.preset,
		"range",
		monitor.DefaultPreset,
		"time range: 1h, 3h, 12h, 24h or today",
	)
	flags.StringVar(
		&opts.rooms,
		"rooms",
		monitor.TotalID,
		"rooms to query: total, summary or a comma-separated list",
	)
	flags.DurationVar(
		&opts.timeout,
		"timeout",
		views.DefaultTimeout,
		"timeout of a single API request",
	)
	flags.StringVar(
		&opts.logFile,
		"log-file",
		"",
		"write logs to file (disabled when empty)",
	)
	flags.StringVar(
		&opts.logLevel,
		"log-level",
		"info",
		"log level: trace, debug, info, warn or error",
	)
}

func envOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// setup builds the logger, the API client and the initial controls.
func setup(opts options, tracker *devtools.Tracker) (*logrus.Logger, io.Closer, *monitor.Client, monitor.Controls, error) {
	logger, closer, err := logging.New(logging.Options{File: opts.logFile, Level: opts.logLevel})
	if err != nil {
		return nil, nil, nil, monitor.Controls{}, err
	}

	client, err := monitor.NewClient(opts.api,
		monitor.WithTracker(tracker),
		monitor.WithLogger(logger),
	)
	if err != nil {
		_ = closer.Close()
		return nil, nil, nil, monitor.Controls{}, fmt.Errorf("create api client: %w", err)
	}

	controls, err := initialControls(opts, time.Now())
	if err != nil {
		_ = closer.Close()
		return nil, nil, nil, monitor.Controls{}, err
	}
	return logger, closer, client, controls, nil
}

func initialControls(opts options, now time.Time) (monitor.Controls, error) {
	controls := monitor.NewControls(now)
	controls, err := controls.WithPreset(opts.preset, now)
	if err != nil {
		return monitor.Controls{}, fmt.Errorf("parse range flag: %w", err)
	}
	controls.Selection = monitor.ParseSelection(opts.rooms)
	return controls, nil
}

func runDashboard(cmd *cobra.Command, opts options) error {
	cpuprofile, err := cmd.Flags().GetString("cpuprofile")
	if err != nil {
		return fmt.Errorf("parse cpuprofile flag: %w", err)
	}
	refresh, err := cmd.Flags().GetDuration("refresh")
	if err != nil {
		return fmt.Errorf("parse refresh flag: %w", err)
	}
	cellWidth, err := cmd.Flags().GetFloat64("cell-width")
	if err != nil {
		return fmt.Errorf("parse cell-width flag: %w", err)
	}
	cellHeight, err := cmd.Flags().GetFloat64("cell-height")
	if err != nil {
		return fmt.Errorf("parse cell-height flag: %w", err)
	}
	exportDir, err := cmd.Flags().GetString("export-dir")
	if err != nil {
		return fmt.Errorf("parse export-dir flag: %w", err)
	}

	tracker := devtools.NewTracker()
	logger, closer, client, controls, err := setup(opts, tracker)
	if err != nil {
		return err
	}
	defer func() {
		_ = closer.Close()
	}()

	var profileFile *os.File
	if cpuprofile != "" {
		file, err := os.Create(cpuprofile)
		if err != nil {
			return fmt.Errorf("create cpuprofile file: %w", err)
		}
		profileFile = file
		if err := pprof.StartCPUProfile(profileFile); err != nil {
			_ = profileFile.Close()
			return fmt.Errorf("start cpu profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = profileFile.Close()
		}()
	}

	// Requests in flight are cancelled when the program exits.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	logger.WithFields(logrus.Fields{
		"component": "cmd",
		"url":       client.DisplayURL(),
		"range":     controls.Preset,
		"rooms":     controls.Selection.String(),
	}).Info("starting dashboard")

	app := ui.New(client, ui.Options{
		Context:    ctx,
		Location:   time.Local,
		Logger:     logger,
		Tracker:    tracker,
		Controls:   controls,
		Refresh:    refresh,
		Timeout:    opts.timeout,
		CellWidth:  cellWidth,
		CellHeight: cellHeight,
		ExportDir:  exportDir,
	})
	p := tea.NewProgram(app, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ethercheck: %w", err)
	}

	return nil
}

func newExportCmd(opts *options) *cobra.Command {
	var (
		out    string
		width  int
		height int
		format string
	)
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Render the packet-loss graph to an image file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(format, out)
			if err != nil {
				return fmt.Errorf("parse format flag: %w", err)
			}
			path, err := runExport(cmd.Context(), *opts, export.Options{
				Width:  width,
				Height: height,
				Format: f,
			}, out)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&out, "out", "o", "ethercheck.png", "output file")
	exportCmd.Flags().IntVar(&width, "width", 0, "image width in pixels (default 1200)")
	exportCmd.Flags().IntVar(&height, "height", 0, "image height in pixels (default 500)")
	exportCmd.Flags().StringVar(&format, "format", "", "image format: png or svg (default from --out)")
	return exportCmd
}

// runExport fetches one graph and writes it to path.
func runExport(ctx context.Context, opts options, img export.Options, path string) (string, error) {
	logger, closer, client, controls, err := setup(opts, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = closer.Close()
	}()

	ctx, cancel := context.WithTimeout(ctx, 2*opts.timeout)
	defer cancel()

	if controls.Selection.Summary {
		rooms, err := monitor.LoadRooms(devtools.WithTracker(ctx, "export.rooms"), client)
		if err != nil {
			logger.WithError(err).Warn("room list unavailable, using fallback")
		}
		controls = controls.WithRooms(rooms)
	}

	q, err := controls.Query()
	if err != nil {
		return "", err
	}
	payload, err := client.Graph(devtools.WithTracker(ctx, "export.graph"), q)
	if err != nil {
		return "", fmt.Errorf("fetch graph: %w", err)
	}

	table := chart.Normalize(payload.RawSeries(), chart.NormalizeOptions{
		Summary:  controls.Selection.Summary,
		Location: time.Local,
	})
	img.Title = "Packet loss, " + controls.RangeLabel()
	img.Location = time.Local
	img.Colors = payload.Colors()
	img.Labels = lo.SliceToMap(table.Series, func(id string) (string, string) {
		return id, views.SeriesLabel(id)
	})
	if err := export.WriteFile(path, chart.Load(table), img); err != nil {
		return "", fmt.Errorf("export graph: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"component": "export",
		"path":      path,
		"series":    len(table.Series),
	}).Info("graph exported")
	return path, nil
}
