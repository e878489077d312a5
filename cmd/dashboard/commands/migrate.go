package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"store_admin_dashboard/internal/model"
	"store_admin_dashboard/pkg/database"
)

// migrateCmd 仅执行表结构迁移
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update database tables",
	Long: `Run gorm AutoMigrate for every model: stores, billboards, categories,
sizes, colors, products (with product_sizes / product_colors), images and uploads.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, cleanup, err := bootstrap()
		if err != nil {
			return err
		}
		defer cleanup()

		db, err := database.Open(databaseOptions(cfg.Database))
		if err != nil {
			return err
		}
		defer closeDB(db)

		if err := database.Migrate(db, model.AllModels()...); err != nil {
			return err
		}
		log.Info("数据库迁移完成", zap.String("driver", cfg.Database.Driver))
		return nil
	},
}
