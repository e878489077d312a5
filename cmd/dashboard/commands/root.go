package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"store_admin_dashboard/internal/config"
	"store_admin_dashboard/internal/middleware"
	"store_admin_dashboard/pkg/database"
	"store_admin_dashboard/pkg/logger"
)

var (
	// Global flags
	configFile string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Store admin dashboard API",
	Long: `Multi-store e-commerce admin backend.

Each authenticated user owns stores; every store has billboards, categories,
sizes, colors and products. Reads under /api/{storeId} are public,
writes require the store owner.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "配置文件路径 (默认查找 ./config.yaml, ./config/config.yaml)")

	rootCmd.AddCommand(serveCmd, migrateCmd, tokenCmd)
}

// ==================== 公共初始化 ====================

// bootstrap 加载配置、初始化日志与 JWT
func bootstrap() (*config.Config, *zap.Logger, func(), error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, nil, err
	}

	log, undo, err := logger.Init(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, nil, err
	}
	cleanup := func() {
		_ = log.Sync()
		undo()
	}

	middleware.SetJWTConfig(&middleware.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenTTL: cfg.JWT.TTL,
		Issuer:         cfg.JWT.Issuer,
	})
	return cfg, log, cleanup, nil
}

func databaseOptions(cfg config.DatabaseConfig) database.Options {
	return database.Options{
		Driver:          cfg.Driver,
		DSN:             cfg.DSN,
		MaxIdleConns:    cfg.MaxIdleConns,
		MaxOpenConns:    cfg.MaxOpenConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		LogLevel:        cfg.LogLevel,
	}
}
