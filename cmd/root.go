package cmd

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/misterclayt0n/prescribe/internal/config"
	"github.com/misterclayt0n/prescribe/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg       *config.Config
	logger    *slog.Logger
	logCloser io.Closer

	userID string // Athlete the command acts on.
)

var rootCmd = &cobra.Command{
	Use:           "prescribe",
	Short:         "Strength load prescription and calibration engine",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.LoadConfig()
		if err != nil {
			return err
		}
		l, closer, err := config.NewLogger(c.Log, os.Stderr)
		if err != nil {
			return err
		}
		cfg, logger, logCloser = c, l, closer
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			return logCloser.Close()
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "me", "Athlete user id")
}

func openStorage() (*storage.Storage, error) {
	if cfg.DB.ConnectionString == "" {
		return nil, errors.New("no database configured: set [database] connection_string, PRESCRIBE_DATABASE_URL or DEV_MODE=true")
	}
	return storage.NewStorage(cfg.DB.ConnectionString, storage.WithLogger(logger))
}
