package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"store_admin_dashboard/internal/config"
	"store_admin_dashboard/internal/controller"
	"store_admin_dashboard/internal/middleware"
	"store_admin_dashboard/internal/model"
	"store_admin_dashboard/internal/repository"
	"store_admin_dashboard/internal/router"
	"store_admin_dashboard/internal/service"
	"store_admin_dashboard/internal/task"
	"store_admin_dashboard/pkg/database"
	"store_admin_dashboard/pkg/utils"
)

var skipMigrate bool

// serveCmd 启动 HTTP 服务与后台任务
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, cleanup, err := bootstrap()
		if err != nil {
			return err
		}
		defer cleanup()

		// 1. 初始化数据库
		db, err := initDatabase(cfg, log)
		if err != nil {
			return err
		}
		defer closeDB(db)

		// 2. 初始化依赖
		deps, err := initDependencies(cfg, db, log)
		if err != nil {
			return err
		}

		// 3. 启动定时任务
		tasks, err := initTasks(cfg, deps, log)
		if err != nil {
			return err
		}
		defer tasks.Stop()

		// 4. 初始化路由
		gin.SetMode(cfg.Server.Mode)
		r := router.New(deps.Controllers, router.Options{
			Logger:        log,
			UploadLimiter: middleware.NewKeyedRateLimiter(cfg.RateLimit.UploadsPerMinute, cfg.RateLimit.UploadBurst),
			StaticDir:     deps.StaticDir,
		})

		// 5. 启动服务
		return startServer(cfg.Server, r, log)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "启动时不执行 AutoMigrate")
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
	StaticDir   string
}

// Repositories 仓库集合
type Repositories struct {
	Uow       *repository.UnitOfWork
	Store     repository.StoreRepository
	Billboard repository.BillboardRepository
	Category  repository.CategoryRepository
	Size      repository.SizeRepository
	Color     repository.ColorRepository
	Product   repository.ProductRepository
	Upload    repository.UploadRepository
}

// Services 服务集合
type Services struct {
	Guard     *service.OwnershipGuard
	Store     *service.StoreService
	Billboard *service.BillboardService
	Category  *service.CategoryService
	Size      *service.SizeService
	Color     *service.ColorService
	Product   *service.ProductService
	Upload    *service.UploadService
	Storage   service.StorageProvider
}

// ==================== 初始化函数 ====================

// initDatabase 连接数据库，注册审计回调并迁移
func initDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := database.Open(databaseOptions(cfg.Database))
	if err != nil {
		return nil, err
	}
	middleware.RegisterAuditCallbacks(db)

	if !skipMigrate {
		if err := database.Migrate(db, model.AllModels()...); err != nil {
			closeDB(db)
			return nil, err
		}
	}
	log.Info("数据库已连接", zap.String("driver", cfg.Database.Driver))
	return db, nil
}

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, db *gorm.DB, log *zap.Logger) (*Dependencies, error) {
	// -------- Repo 层 --------
	repos := initRepositories(db)

	// -------- 存储服务 --------
	storage, err := service.NewStorageProvider(service.NewStorageConfig(cfg.Storage))
	if err != nil {
		return nil, fmt.Errorf("存储服务初始化失败: %w", err)
	}
	log.Info("存储服务已就绪", zap.String("provider", storage.Name()))

	// -------- 业务服务 --------
	guard := service.NewOwnershipGuard(repos.Store)
	services := &Services{
		Guard:     guard,
		Store:     service.NewStoreService(repos.Store, guard, repos.Uow),
		Billboard: service.NewBillboardService(repos.Billboard, guard, repos.Uow),
		Category:  service.NewCategoryService(repos.Category, guard, repos.Uow),
		Size:      service.NewSizeService(repos.Size, guard, repos.Uow),
		Color:     service.NewColorService(repos.Color, guard, repos.Uow),
		Product:   service.NewProductService(repos.Product, guard, repos.Uow),
		Upload: service.NewUploadService(guard, repos.Upload, storage,
			utils.NewHTTPClient(cfg.Server.WriteTimeout), cfg.Storage.MaxUploadSize),
		Storage: storage,
	}

	deps := &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: initControllers(db, services, cfg.Storage.MaxUploadSize),
	}
	if local, ok := storage.(*service.LocalStorage); ok {
		deps.StaticDir = local.BasePath()
	}
	return deps, nil
}

// initRepositories 初始化所有仓库
func initRepositories(db *gorm.DB) *Repositories {
	uow := repository.NewUnitOfWork(db)
	return &Repositories{
		Uow:       uow,
		Store:     uow.Stores,
		Billboard: uow.Billboards,
		Category:  uow.Categories,
		Size:      uow.Sizes,
		Color:     uow.Colors,
		Product:   uow.Products,
		Upload:    uow.Uploads,
	}
}

// initControllers 初始化所有控制器
func initControllers(db *gorm.DB, svc *Services, maxUploadSize int64) *router.Controllers {
	return &router.Controllers{
		Health:    controller.NewHealthController(db),
		Store:     controller.NewStoreController(svc.Store),
		Billboard: controller.NewBillboardController(svc.Billboard),
		Category:  controller.NewCategoryController(svc.Category),
		Size:      controller.NewSizeController(svc.Size),
		Color:     controller.NewColorController(svc.Color),
		Product:   controller.NewProductController(svc.Product),
		Upload:    controller.NewUploadController(svc.Upload, maxUploadSize),
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化并启动定时任务
func initTasks(cfg *config.Config, deps *Dependencies, log *zap.Logger) (*task.TaskManager, error) {
	tm := task.NewTaskManager(&task.TaskManagerDeps{
		Cleaner: deps.Services.Upload,
		Logger:  log,
	}, &task.TaskManagerConfig{
		CleanupEnabled:     cfg.Tasks.CleanupEnabled,
		CleanupSpec:        cfg.Tasks.CleanupSpec,
		CleanupGracePeriod: cfg.Tasks.CleanupGracePeriod,
		CleanupConcurrency: cfg.Tasks.CleanupConcurrency,
		CleanupBatchSize:   cfg.Tasks.CleanupBatchSize,
	})
	if err := tm.Start(); err != nil {
		return nil, fmt.Errorf("定时任务启动失败: %w", err)
	}
	return tm, nil
}

// ==================== 服务启动 ====================

// startServer 启动服务，收到 SIGINT/SIGTERM 后优雅关闭
func startServer(cfg config.ServerConfig, r *gin.Engine, log *zap.Logger) error {
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 异步启动服务
	errCh := make(chan error, 1)
	go func() {
		log.Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待退出信号
	select {
	case err := <-errCh:
		return fmt.Errorf("服务启动失败: %w", err)
	case <-ctx.Done():
	}

	log.Info("正在关闭服务...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("服务强制关闭: %w", err)
	}

	log.Info("服务已退出")
	return nil
}

// ==================== 工具函数 ====================

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
