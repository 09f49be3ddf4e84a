package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"portfolio-cms/pkg/services"
	"portfolio-cms/pkg/store"
)

var importCmd = &cobra.Command{
	Use:       "import [projects|blogs|reviews|all]",
	Short:     "Copy file documents into the database",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"projects", "blogs", "reviews", "all"},
	Long: `Upserts every document under CONTENT_DIR into the database, keyed on slug.
"reviews" seeds the built-in testimonials. Documents that fail are logged
and the run continues.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		target := "all"
		if len(args) == 1 {
			target = args[0]
		}
		if !appConfig.RemoteConfigured() {
			return errors.New("DATABASE_URL is not set")
		}

		ctx := cmd.Context()
		b, err := openBackend(ctx, appConfig)
		if err != nil {
			return err
		}
		defer b.Close()

		importer := services.NewImporter(logger)
		report := services.ImportReport{Imported: []string{}, Failed: []string{}}

		if target == "projects" || target == "all" {
			r, err := importer.ImportProjects(ctx, b.projectFiles, store.NewProjectTable(b.db))
			report.Merge(r)
			if err != nil {
				return err
			}
		}
		if target == "blogs" || target == "all" {
			r, err := importer.ImportBlogs(ctx, b.blogFiles, store.NewBlogTable(b.db))
			report.Merge(r)
			if err != nil {
				return err
			}
		}
		if target == "reviews" || target == "all" {
			report.Merge(importer.ImportReviews(ctx, store.NewReviewTable(b.db)))
		}

		logger.Info("import complete",
			zap.Int("imported", len(report.Imported)),
			zap.Int("failed", len(report.Failed)))
		if len(report.Failed) > 0 {
			return fmt.Errorf("%d documents failed to import: %v", len(report.Failed), report.Failed)
		}
		return nil
	},
}
