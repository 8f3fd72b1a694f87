package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/theplant/facet/config"
)

var (
	configDir string

	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "listingd",
	Short:         "Marketplace listing service",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configDir)
		if err != nil {
			return err
		}
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
		log, err = zc.Build()
		if err != nil {
			return errors.Wrap(err, "build logger")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "./configs", "folder holding .env and .local.env")
	rootCmd.AddCommand(serveCmd, migrateCmd, queryCmd)
}

func openDB() (*gorm.DB, error) {
	if cfg.DatabaseDSN == "" {
		return nil, errors.New("DATABASE_DSN is required")
	}
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	return db, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
