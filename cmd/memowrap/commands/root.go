// Package commands implements the memowrap CLI.
package commands

import (
	"context"
	"io"

	"github.com/on-the-ground/memo_ive_go/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// CLI represents the memowrap command line interface.
type CLI struct {
	rootCmd *cobra.Command
	flags   flags
}

type flags struct {
	configPath string
	widths     []int
	passes     int
	maxAge     int
	workers    int
	bufferSize int
	verbose    bool
	print      bool
}

// New creates the root command.
func New() *CLI {
	c := &CLI{}
	defaults := config.Default()

	rootCmd := &cobra.Command{
		Use:   "memowrap [files...]",
		Short: "Wrap text at several widths, reusing layouts through a constrained memo cache",
		Long: "memowrap lays out every paragraph of the given files (or stdin) at each width.\n" +
			"A paragraph's layout is reused for every width that would break it the same way.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          c.run,
	}

	fs := rootCmd.Flags()
	fs.StringVarP(&c.flags.configPath, "config", "c", "", "YAML config file")
	fs.IntSliceVarP(&c.flags.widths, "widths", "w", defaults.Widths, "Layout widths, in columns")
	fs.IntVar(&c.flags.passes, "passes", defaults.Passes, "Number of passes over all widths")
	fs.IntVar(&c.flags.maxAge, "max-age", defaults.MaxAge, "Sweeps an unused entry survives")
	fs.IntVar(&c.flags.workers, "workers", defaults.Workers, "Number of workers, each with its own cache")
	fs.IntVar(&c.flags.bufferSize, "buffer", defaults.BufferSize, "Queue size per worker")
	fs.BoolVarP(&c.flags.verbose, "verbose", "v", false, "Log cache activity")
	fs.BoolVarP(&c.flags.print, "print", "p", false, "Print the layouts of the last width")

	c.rootCmd = rootCmd
	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetIO redirects the command streams. Used for testing.
func (c *CLI) SetIO(in io.Reader, out io.Writer) {
	c.rootCmd.SetIn(in)
	c.rootCmd.SetOut(out)
}

// loadConfig reads the config file, if any, and overlays explicit flags.
func (c *CLI) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if c.flags.configPath != "" {
		var err error
		if cfg, err = config.Load(c.flags.configPath); err != nil {
			return cfg, err
		}
	}

	fs := cmd.Flags()
	if fs.Changed("widths") {
		cfg.Widths = c.flags.widths
	}
	if fs.Changed("passes") {
		cfg.Passes = c.flags.passes
	}
	if fs.Changed("max-age") {
		cfg.MaxAge = c.flags.maxAge
	}
	if fs.Changed("workers") {
		cfg.Workers = c.flags.workers
	}
	if fs.Changed("buffer") {
		cfg.BufferSize = c.flags.bufferSize
	}
	return cfg, cfg.Validate()
}

func (c *CLI) newLogger() (*zap.Logger, error) {
	if !c.flags.verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}
