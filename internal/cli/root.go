// Package cli implements the inkwell command line client.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/inkwell-cms/inkwell-go/internal/client"
	"github.com/inkwell-cms/inkwell-go/internal/config"
	"github.com/inkwell-cms/inkwell-go/internal/errs"
	"github.com/inkwell-cms/inkwell-go/internal/tokenstore"
)

var (
	version = "dev"
	commit  = "unknown"
)

var (
	flagConfig  string
	flagBaseURL string
	flagDataDir string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:     "inkwell",
	Short:   "Inkwell is a command line client for the Inkwell blog platform",
	Version: fmt.Sprintf("%s (commit: %s)", version, commit),
}

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "API base url (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "session data directory (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log requests to stderr")
}

// newAPIClient wires config, logger, session store and API client for a
// command invocation. The returned closer flushes the store.
func newAPIClient() (*client.Client, func(), error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, err
	}
	if flagBaseURL != "" {
		cfg.BaseURL = flagBaseURL
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}

	log := zap.NewNop()
	if flagVerbose {
		lvl, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			lvl = zapcore.InfoLevel
		}
		zcfg := zap.NewDevelopmentConfig()
		zcfg.Level = zap.NewAtomicLevelAt(lvl)
		if log, err = zcfg.Build(); err != nil {
			return nil, nil, err
		}
	}

	store, err := tokenstore.OpenPebble(filepath.Join(cfg.DataDir, "session"), log)
	if err != nil {
		return nil, nil, fmt.Errorf("open session store: %w", err)
	}

	c, err := client.New(client.Options{
		BaseURL:           cfg.BaseURL,
		Store:             store,
		Logger:            log,
		Timeout:           cfg.Timeout,
		CacheTTL:          cfg.ListTTL,
		RequestsPerSecond: cfg.RequestsPerSecond,
	})
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	c.OnForcedLogout(func(err error) {
		fmt.Fprintln(os.Stderr, "session expired, please login again")
	})

	closer := func() {
		_ = log.Sync()
		_ = store.Close()
	}
	return c, closer, nil
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// friendly rewords the errors a user hits most often.
func friendly(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errs.ErrSessionExpired), errors.Is(err, errs.ErrNoRefreshToken):
		return fmt.Errorf("not logged in (run `inkwell login`)")
	default:
		return err
	}
}
