package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dramsec/hammerplot/config"
	"github.com/dramsec/hammerplot/dramlog"
	"github.com/dramsec/hammerplot/plotview"
	"github.com/dramsec/hammerplot/recording"
	"github.com/dramsec/hammerplot/walker"
)

type options struct {
	settings            string
	plotColumns         int
	aggressorsVsVictims bool
	annotate            string
	record              string
	port                int
	noBrowser           bool
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "hammerplot <log-file>",
		Short: "Plot rowhammer attack logs as 2-D bit-flip histograms.",
		Long: `Hammerplot reads the attack log produced by a hammering run ` +
			`and displays it as interactive heat maps: one row/column error ` +
			`map per attack by default, or a single aggressor-vs-victim map ` +
			`for the whole log with --aggressors-vs-victims.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(opts, args[0])
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.settings, "settings", cfg.Settings,
		"generated settings file with the DRAM geometry")
	flags.IntVar(&opts.plotColumns, "plot-columns", 32,
		"how many columns to show in the resulting grid")
	flags.BoolVar(&opts.aggressorsVsVictims, "aggressors-vs-victims", false,
		"plot aggressors against their victims")
	flags.StringVar(&opts.annotate, "annotate", "color",
		"annotate heat map cells with the number of bitflips or "+
			"just a color (color|bitflips)")
	flags.StringVar(&opts.record, "record", "",
		"also record attacks and flip events into this SQLite database")
	flags.IntVar(&opts.port, "port", cfg.HTTPPort,
		"port of the plot server, 0 picks a free one")
	flags.BoolVar(&opts.noBrowser, "no-browser", !cfg.OpenBrowser,
		"do not open the plot page in a browser")

	return rootCmd
}

func run(opts *options, logFile string) error {
	if opts.annotate != "color" && opts.annotate != "bitflips" {
		return fmt.Errorf(
			"--annotate must be color or bitflips, got %q", opts.annotate)
	}

	if opts.plotColumns < 1 {
		return fmt.Errorf(
			"--plot-columns must be at least 1, got %d", opts.plotColumns)
	}

	geom, attackLog, err := dramlog.Load(opts.settings, logFile)
	if err != nil {
		return err
	}

	colStep := int(geom.Cols()) / opts.plotColumns
	if colStep < 1 {
		colStep = 1
	}

	server := plotview.NewServer(opts.port)
	viewer := plotview.NewViewer(server, !opts.noBrowser)
	renderer := plotview.NewHistogramRenderer(
		geom, colStep, opts.annotate == "bitflips", viewer)

	mode := walker.PerAttack
	if opts.aggressorsVsVictims {
		mode = walker.AggressorsVsVictims
	}

	w := walker.New(mode, renderer)

	if opts.record != "" {
		recorder, err := recording.NewRecorder(opts.record)
		if err != nil {
			return err
		}
		defer recorder.Close()

		w = w.WithEventSink(recorder)
	}

	return w.Walk(attackLog)
}
