package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/printshop/printshop-api/apiclient"
	"github.com/printshop/printshop-api/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app carries the global flags and the client built from them
type app struct {
	baseURL string
	token   string
	output  string
	timeout time.Duration
	verbose bool

	logger *zap.Logger
	client *apiclient.Client
}

func newRootCmd(defaults *config.Config) *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "printshopctl",
		Short: "Command line client for the print shop API",
		Long: `printshopctl talks to a running print shop backend.

It lists orders and proofing orders, manages the design type catalog and
prints the dashboards. Output is a table by default or JSON with --output json.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.baseURL, "base-url", defaults.APIBaseURL, "Backend base URL (env API_BASE_URL)")
	flags.StringVar(&a.token, "token", defaults.APIToken, "Bearer token (env API_TOKEN)")
	flags.StringVarP(&a.output, "output", "o", "table", "Output format: table or json")
	flags.DurationVar(&a.timeout, "timeout", 30*time.Second, "Request timeout")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Log every request")

	rootCmd.AddCommand(
		newOrdersCmd(a),
		newDesignTypesCmd(a),
		newProofingCmd(a),
		newDashboardCmd(a),
	)
	return rootCmd
}

func (a *app) init() error {
	switch strings.ToLower(a.output) {
	case "table", "json":
	default:
		return fmt.Errorf("unknown output format %q (want table or json)", a.output)
	}

	if a.logger == nil {
		zcfg := zap.NewDevelopmentConfig()
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if a.verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err := zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		a.logger = logger
	}

	opts := []apiclient.Option{
		apiclient.WithLogger(a.logger),
		apiclient.WithTimeout(a.timeout),
	}
	if a.token != "" {
		opts = append(opts, apiclient.WithBearerToken(a.token))
	}
	client, err := apiclient.New(a.baseURL, opts...)
	if err != nil {
		return err
	}
	a.client = client
	return nil
}

func main() {
	// The CLI reads API_BASE_URL and API_TOKEN from the same .env files as
	// the server; a missing file is fine.
	cfg := &config.Config{APIBaseURL: "http://localhost:8080", LogLevel: "warn"}
	if loaded, err := config.Load(); err == nil {
		cfg = loaded
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(cfg).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
