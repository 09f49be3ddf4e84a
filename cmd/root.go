package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"portfolio-cms/pkg/config"
	"portfolio-cms/pkg/logging"
)

var (
	appConfig *config.Config
	logger    *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "portfolio-cms",
	Short: "Content service for the portfolio site",
	Long: `portfolio-cms serves projects, blog posts and reviews for the portfolio
site. Content lives in a SQL database when DATABASE_URL is set, and in
front-matter documents under CONTENT_DIR otherwise.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		appConfig = cfg

		logger, err = logging.New(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return err
		}
		if cfg.EnvFile == "" {
			logger.Info("no .env file found, using the process environment")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, importCmd, hashPasswordCmd)
}
