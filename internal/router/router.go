package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"store_admin_dashboard/internal/api/dto"
	"store_admin_dashboard/internal/controller"
	"store_admin_dashboard/internal/middleware"

	_ "store_admin_dashboard/docs"
)

// Controllers 路由依赖的控制器
type Controllers struct {
	Health    *controller.HealthController
	Store     *controller.StoreController
	Billboard *controller.BillboardController
	Category  *controller.CategoryController
	Size      *controller.SizeController
	Color     *controller.ColorController
	Product   *controller.ProductController
	Upload    *controller.UploadController
}

// Options 路由选项
type Options struct {
	Logger        *zap.Logger
	UploadLimiter *middleware.KeyedRateLimiter
	StaticDir     string // 本地存储目录，非空时挂载到 /uploads
}

// New 创建引擎并注册全局中间件与路由
func New(ctls *Controllers, opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.L()
	}
	dto.RegisterValidation()

	r := gin.New()
	r.Use(
		middleware.Recovery(opts.Logger),
		middleware.RequestLogger(opts.Logger),
		middleware.Metrics(),
		middleware.OptionalAuth(),
	)

	InitRoutes(r, ctls, opts)
	return r
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, ctls *Controllers, opts Options) {
	// 1. 系统路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", ctls.Health.Health)
	if opts.StaticDir != "" {
		r.Static("/uploads", opts.StaticDir)
	}

	// 写操作统一要求登录，并把用户注入审计上下文
	auth := []gin.HandlerFunc{middleware.JWTAuth(), middleware.AuditContext()}

	// 2. API 路由组
	api := r.Group("/api")
	{
		// 店铺管理，全部需要登录
		stores := api.Group("/stores", auth...)
		{
			stores.GET("", ctls.Store.List)
			stores.POST("", ctls.Store.Create)
			stores.GET("/:storeId", ctls.Store.Get)
			stores.PATCH("/:storeId", ctls.Store.Update)
			stores.DELETE("/:storeId", ctls.Store.Delete)
		}

		// 店铺下的子资源，GET 对店面公开
		store := api.Group("/:storeId")
		{
			registerCRUD(store.Group("/billboards"), auth, ctls.Billboard)
			registerCRUD(store.Group("/categories"), auth, ctls.Category)
			registerCRUD(store.Group("/sizes"), auth, ctls.Size)
			registerCRUD(store.Group("/colors"), auth, ctls.Color)
			registerCRUD(store.Group("/products"), auth, ctls.Product)

			uploads := store.Group("/uploads", auth...)
			if opts.UploadLimiter != nil {
				uploads.Use(middleware.RateLimit(opts.UploadLimiter))
			}
			uploads.POST("", ctls.Upload.Upload)
		}
	}
}

// crudController 店铺子资源控制器
type crudController interface {
	List(ctx *gin.Context)
	Get(ctx *gin.Context)
	Create(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

func registerCRUD(g *gin.RouterGroup, auth []gin.HandlerFunc, ctl crudController) {
	g.GET("", ctl.List)
	g.GET("/:id", ctl.Get)
	g.POST("", append(auth, ctl.Create)...)
	g.PATCH("/:id", append(auth, ctl.Update)...)
	g.DELETE("/:id", append(auth, ctl.Delete)...)
}
