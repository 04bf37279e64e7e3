package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sleepcalc/internal/config"
	"sleepcalc/internal/cycle"
	"sleepcalc/internal/render"
	"sleepcalc/internal/tui"
	"sleepcalc/internal/web"
)

const appVersion = "0.3.2"

type app struct {
	v      *viper.Viper
	cfg    *config.Config
	logger *slog.Logger

	// clock is time.Now outside tests.
	clock func() time.Time
}

func main() {
	a := &app{v: config.New(), clock: time.Now}
	if err := newRootCmd(a).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	var (
		cfgFile string
		modeStr string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "sleepcalc",
		Short: "Sleep cycle calculator (CLI, web or live terminal view)",
		Long: `sleepcalc works out bedtimes or wake times in whole 90-minute sleep cycles,
allowing 14 minutes to fall asleep. 4 to 6 cycles (6 to 9 hours) are marked
as recommended.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			cfg, err := config.Load(a.v, cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: cfg.LogLevel,
			}))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := cycle.ParseMode(modeStr)
			if err != nil {
				return err
			}
			at := a.cfg.Wake
			if mode == cycle.ModeSleep {
				at = a.cfg.Now(a.clock())
			}
			return a.print(cmd.OutOrStdout(), mode, at, asJSON)
		},
	}

	cmd.Version = appVersion
	cmd.SetVersionTemplate("sleepcalc v{{.Version}}\n")

	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (YAML, TOML or JSON)")
	pf.String(config.KeyWake, config.DefaultWake, "Wake time HH:MM (24h) for bedtime calculations")
	pf.String(config.KeyDemoTime, "", "Use this HH:MM instead of the current time")
	pf.Bool(config.KeyColor, true, "Highlight recommended times")
	pf.String(config.KeyLogLevel, config.DefaultLogLevel, "Log level (debug, info, warn, error)")

	cmd.Flags().StringVar(&modeStr, "mode", string(cycle.ModeWake), `"wake" lists bedtimes for --wake, "sleep" lists wake times for now`)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")

	cmd.AddCommand(newBedtimesCmd(a), newWakeTimesCmd(a), newServeCmd(a), newWatchCmd(a))
	return cmd
}

func newBedtimesCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "bedtimes [HH:MM]",
		Short: "When to go to bed to wake up at HH:MM (default --wake)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at := a.cfg.Wake
			if len(args) == 1 {
				c, err := cycle.ParseClock(args[0])
				if err != nil {
					return err
				}
				at = c
			}
			return a.print(cmd.OutOrStdout(), cycle.ModeWake, at, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func newWakeTimesCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "wake-times [HH:MM]",
		Short: "When to wake up if you go to bed at HH:MM (default now)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at := a.cfg.Now(a.clock())
			if len(args) == 1 {
				c, err := cycle.ParseClock(args[0])
				if err != nil {
					return err
				}
				at = c
			}
			return a.print(cmd.OutOrStdout(), cycle.ModeSleep, at, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web UI and JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Listening on:")
			for _, addr := range web.ListenAddrs(a.cfg.Port) {
				fmt.Fprintf(out, "  %s\n", addr)
			}
			fmt.Fprintln(out)

			srv := web.New(a.cfg, a.logger, web.Options{
				Version:   appVersion,
				Now:       a.clock,
				AccessLog: out,
			})
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().Int(config.KeyPort, config.DefaultPort, "Port to listen on")
	cmd.Flags().Duration(config.KeyRefresh, config.DefaultRefresh, "Page refresh interval in sleep mode")
	cmd.Flags().Bool(config.KeyAccessLog, true, "Log every request to stdout")
	return cmd
}

func newWatchCmd(a *app) *cobra.Command {
	var modeStr string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live terminal view that follows the clock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := cycle.ParseMode(modeStr)
			if err != nil {
				return err
			}
			now := func() cycle.Clock { return a.cfg.Now(a.clock()) }
			return tui.Run(tui.NewModel(mode, a.cfg.Wake, now, a.cfg.Refresh))
		},
	}
	cmd.Flags().StringVar(&modeStr, "mode", string(cycle.ModeSleep), `Start in "sleep" or "wake" mode`)
	cmd.Flags().Duration(config.KeyRefresh, config.DefaultRefresh, "Recalculate interval")
	return cmd
}

func (a *app) print(w io.Writer, mode cycle.Mode, at cycle.Clock, asJSON bool) error {
	entries, err := cycle.Calculate(mode, at)
	if err != nil {
		return err
	}
	a.logger.Debug("calculated", "mode", mode, "at", at.String())

	if asJSON {
		return render.JSON(w, render.NewResult(mode, at, entries))
	}
	if mode == cycle.ModeSleep {
		fmt.Fprintf(w, "Going to bed at %s, asleep by %s.\n\n", at.Format12(), at.Add(cycle.OnsetMinutes).Format12())
	}
	return render.Table(w, mode.Heading(), entries, a.cfg.Color && !color.NoColor)
}
