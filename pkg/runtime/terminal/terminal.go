package terminal

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/condition-atlas/pkg/bootstrap"
	"github.com/de-tools/condition-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/condition-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/condition-atlas/pkg/services/config"
)

// CLI represents the command-line interface
type CLI struct {
	opts     Options
	cfgPath  string
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	// LogOutput receives structured logs, stderr by default.
	LogOutput io.Writer
	// Generator overrides the configured pipeline, mainly for tests.
	Generator commands.Generator
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}

	cli := &CLI{
		opts:     opts,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// SetArgs overrides os.Args, used by tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "condition-atlas",
		Short:         "Daily condition log report tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(cli.opts.Output)
	cmd.PersistentFlags().StringVarP(&cli.cfgPath, "config", "c", "", "Path to a YAML config file")

	cmd.AddCommand(commands.NewGenerateCmd(cli.load))
	cmd.AddCommand(commands.NewSummaryCmd(cli.load, cli.reporter))

	return cmd
}

// load reads the configuration and builds the pipeline for one command run.
func (cli *CLI) load(cmd *cobra.Command) (*commands.Dependencies, error) {
	cfg, err := config.Load(cli.cfgPath)
	if err != nil {
		return nil, err
	}

	logger, err := bootstrap.NewLogger(cfg, cli.opts.LogOutput)
	if err != nil {
		return nil, err
	}
	ctx := logger.WithContext(cmd.Context())
	cmd.SetContext(ctx)

	generator := cli.opts.Generator
	if generator == nil {
		g, err := bootstrap.NewGenerator(ctx, cfg)
		if err != nil {
			return nil, err
		}
		generator = g
	}

	zerolog.Ctx(ctx).Debug().Str("config", cli.cfgPath).Msg("configuration loaded")
	return &commands.Dependencies{Generator: generator}, nil
}
