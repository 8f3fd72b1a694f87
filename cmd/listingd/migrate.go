package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theplant/facet/catalog"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the listing tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		if err := db.WithContext(cmd.Context()).AutoMigrate(catalog.Models()...); err != nil {
			return errors.Wrap(err, "auto migrate")
		}
		log.Info("migrated listing tables", zap.Strings("entities", catalog.Entities()))
		return nil
	},
}
