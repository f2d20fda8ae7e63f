// SPDX-License-Identifier: EPL-2.0

// Package cli holds the soundprep command tree.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ik5/soundprep"
	"github.com/ik5/soundprep/config"
	"github.com/ik5/soundprep/internal/progress"
	"github.com/ik5/soundprep/logger"
)

// app is the state shared by every command of one invocation.
type app struct {
	cfg  *config.Config
	log  *zap.Logger
	prog progress.Factory

	datasetDir string
	audioDir   string
	metadata   string
	outputDir  string
	mixedDir   string
	rate       int
	seconds    float64
	logLevel   string
	logFormat  string
	logFile    string
	bars       bool

	testFold int
	workers  int
	mixCount int
	mixArity int
	seed     uint64
}

// NewRootCommand builds the command tree. Configuration comes from the
// environment (and .env); flags that are set win over it.
func NewRootCommand() *cobra.Command {
	a := &app{prog: progress.Nop{}}

	root := &cobra.Command{
		Use:           "soundprep",
		Short:         "Prepare an UrbanSound8K style corpus for classifier training.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.prog.Wait()
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.datasetDir, "dataset", "", "dataset root; audio and metadata default below it")
	f.StringVar(&a.audioDir, "audio-dir", "", "directory holding the fold<N> directories")
	f.StringVar(&a.metadata, "metadata", "", "corpus metadata CSV")
	f.StringVar(&a.outputDir, "output", "", "split output directory")
	f.StringVar(&a.mixedDir, "mixed", "", "mixture output directory")
	f.IntVar(&a.rate, "rate", 0, "target sample rate in Hz")
	f.Float64Var(&a.seconds, "seconds", 0, "clip length in seconds")
	f.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error")
	f.StringVar(&a.logFormat, "log-format", "", "console or json")
	f.StringVar(&a.logFile, "log-file", "", "also log to this rotated file")
	f.BoolVar(&a.bars, "progress", false, "show progress bars on stderr")

	root.AddCommand(
		newDescribeCommand(a),
		newFeaturesCommand(a),
		newSplitCommand(a),
		newMixCommand(a),
		newRunCommand(a),
		newPublishCommand(a),
		newNormalizeCommand(a),
	)

	return root
}

// Execute runs the command tree until it finishes or the process is
// interrupted.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command) error {
	a.cfg = config.Load()
	a.override(cmd)

	log, err := logger.New(a.cfg.Logger())
	if err != nil {
		return err
	}
	a.log = log

	if a.bars {
		a.prog = progress.NewBars(cmd.ErrOrStderr())
	}

	return nil
}

// override copies every flag the user set onto the loaded config.
func (a *app) override(cmd *cobra.Command) {
	f := cmd.Flags()
	c := a.cfg

	if f.Changed("dataset") {
		c.SetDatasetDir(a.datasetDir)
	}

	overrides := []struct {
		flag  string
		apply func()
	}{
		{"audio-dir", func() { c.AudioDir = a.audioDir }},
		{"metadata", func() { c.MetadataPath = a.metadata }},
		{"output", func() { c.OutputDir = a.outputDir }},
		{"mixed", func() { c.MixedDir = a.mixedDir }},
		{"rate", func() { c.TargetRate = a.rate }},
		{"seconds", func() { c.ClipSeconds = a.seconds }},
		{"log-level", func() { c.LogLevel = a.logLevel }},
		{"log-format", func() { c.LogFormat = a.logFormat }},
		{"log-file", func() { c.LogFile = a.logFile }},
		{"fold", func() { c.TestFold = a.testFold }},
		{"workers", func() { c.Workers = a.workers }},
		{"count", func() { c.MixCount = a.mixCount }},
		{"arity", func() { c.MixArity = a.mixArity }},
		{"seed", func() { c.Seed = a.seed }},
	}

	for _, o := range overrides {
		if f.Changed(o.flag) {
			o.apply()
		}
	}
}

func (a *app) pipeline() *soundprep.Pipeline {
	p := soundprep.New(a.cfg, a.log)
	p.Progress = a.prog

	return p
}

func splitFlags(cmd *cobra.Command, a *app) {
	cmd.Flags().IntVar(&a.testFold, "fold", 0, "fold held out for testing")
	cmd.Flags().IntVar(&a.workers, "workers", 0, "clips processed concurrently")
}

func mixFlags(cmd *cobra.Command, a *app) {
	cmd.Flags().IntVar(&a.mixCount, "count", 0, "number of mixtures")
	cmd.Flags().IntVar(&a.mixArity, "arity", 0, "distinct classes per mixture")
	cmd.Flags().Uint64Var(&a.seed, "seed", 0, "random seed, 0 derives one from the clock")
}
