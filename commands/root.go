package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/1broseidon/imagen/client"
	"github.com/1broseidon/imagen/common"
	"github.com/1broseidon/imagen/config"
	"github.com/1broseidon/imagen/internal/logging"
	"github.com/1broseidon/imagen/models"
	"github.com/spf13/cobra"
)

var errMissingPrompt = errors.New("missing prompt argument")

type rootOptions struct {
	model      string
	configPath string
	envFile    string
	logLevel   string
	timeout    time.Duration
}

// NewRootCmd builds the imagen command. extra options are applied after the
// ones derived from configuration.
func NewRootCmd(extra ...client.ClientOption) *cobra.Command {
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "imagen <prompt> [output_path] [size]",
		Short: "Generate an image from a text prompt with Google Gemini",
		Long: `Generate an image from a text prompt with Google Gemini and save it to disk.

The API key is read from the GEMINI_API_KEY environment variable (a .env file
in the working directory is loaded if present). Parent directories of
output_path are created as needed.`,
		Example: `  imagen "Modern tech logo"
  imagen "UI mockup" output/mockup.png
  imagen "Server diagram" diagrams/server.png 2048x2048
  imagen -- "-1 as a neon sign"`,
		Args:          requirePrompt,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, o, extra)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&o.model, "model", "", "Model name (default "+client.DefaultModel+", or $"+config.EnvModel+")")
	flags.StringVar(&o.configPath, "config", "", "Path to a YAML configuration file")
	flags.StringVar(&o.envFile, "env-file", ".env", "Path to .env file (ignored if missing)")
	flags.StringVar(&o.logLevel, "log-level", "", "Log level: disabled, debug, info, warn, error")
	flags.DurationVar(&o.timeout, "timeout", 0, "Abort the request after this long (0 waits indefinitely)")

	return cmd
}

func requirePrompt(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		_ = cmd.Usage()
		return errMissingPrompt
	}
	return cobra.MaximumNArgs(3)(cmd, args)
}

func runGenerate(cmd *cobra.Command, args []string, o *rootOptions, extra []client.ClientOption) error {
	if err := config.LoadDotEnv(o.envFile); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}

	cfg, err := config.Load(o.configPath, os.LookupEnv)
	if err != nil {
		return err
	}
	if o.model != "" {
		cfg.Model = o.model
	}
	if cmd.Flags().Changed("log-level") {
		if _, err := common.ParseLogLevel(o.logLevel); err != nil {
			return err
		}
		cfg.LogLevel = o.logLevel
	}

	input := models.ImageGenerationInput{
		Prompt:     args[0],
		OutputPath: cfg.OutputPath,
		Size:       cfg.Size,
		Sampling:   cfg.Sampling,
	}
	if len(args) > 1 {
		input.OutputPath = args[1]
	}
	if len(args) > 2 {
		input.Size = args[2]
	}

	opts := []client.ClientOption{client.WithLogger(logging.NewLogger(cmd.ErrOrStderr()))}
	opts = append(opts, cfg.ClientOptions()...)
	opts = append(opts, extra...)
	c := client.NewClient(opts...)
	defer c.Close()

	if err := c.CheckCredential(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Generating image: %s\n", input.Prompt)
	fmt.Fprintf(out, "Size: %s\n", input.Size)
	fmt.Fprintln(out, "This may take 10-30 seconds...")

	result, err := c.GenerateImage(ctx, input)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Image saved to: %s\n", result.Path)
	return nil
}

// Execute runs the imagen command against os.Args and reports any failure
// on stderr. The caller exits non-zero when an error is returned.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return execute(ctx, NewRootCmd())
}

func execute(ctx context.Context, cmd *cobra.Command) error {
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		report(cmd.ErrOrStderr(), err)
	}
	return err
}
