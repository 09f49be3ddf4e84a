package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"portfolio-cms/pkg/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the content tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !appConfig.RemoteConfigured() {
			return errors.New("DATABASE_URL is not set")
		}
		b, err := openBackend(cmd.Context(), appConfig)
		if err != nil {
			return err
		}
		defer b.Close()

		if err := store.Migrate(cmd.Context(), b.db, appConfig.DatabaseDriver); err != nil {
			return err
		}
		logger.Info("schema is up to date", zap.String("driver", appConfig.DatabaseDriver))
		return nil
	},
}
