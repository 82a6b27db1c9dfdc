package main

import (
	"context"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/vivekdevkar123/BillEase-BE/cmd/fx/account_fx"
	"github.com/vivekdevkar123/BillEase-BE/cmd/fx/bill_fx"
	"github.com/vivekdevkar123/BillEase-BE/cmd/fx/controllers_fx"
	"github.com/vivekdevkar123/BillEase-BE/cmd/fx/dashboard_fx"
	"github.com/vivekdevkar123/BillEase-BE/cmd/fx/db_fx"
	"github.com/vivekdevkar123/BillEase-BE/cmd/fx/mail_fx"
	"github.com/vivekdevkar123/BillEase-BE/cmd/fx/memcache_fx"
	"github.com/vivekdevkar123/BillEase-BE/cmd/fx/metrics_fx"
	"github.com/vivekdevkar123/BillEase-BE/cmd/fx/plan_fx"
	"github.com/vivekdevkar123/BillEase-BE/cmd/fx/product_fx"
	"github.com/vivekdevkar123/BillEase-BE/internal/api/controllers"
	"github.com/vivekdevkar123/BillEase-BE/internal/models/db_models"
	"github.com/vivekdevkar123/BillEase-BE/pkg/logger"
	"github.com/vivekdevkar123/BillEase-BE/pkg/metrics"
	"github.com/vivekdevkar123/BillEase-BE/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	logger.Init()

	app := fx.New(
		db_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		metrics_fx.Module,

		account_fx.Module,
		plan_fx.Module,
		product_fx.Module,
		bill_fx.Module,
		dashboard_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			go func() {
				log.Info().Str("port", port).Msg("starting HTTP server")
				if err := engine.Run(":" + port); err != nil {
					log.Fatal().Err(err).Msg("failed to start server")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	m *metrics.Metrics,
	accountController *controllers.AccountController,
	planController *controllers.PlanController,
	productController *controllers.ProductController,
	billController *controllers.BillController,
	dashboardController *controllers.DashboardController,
	reportController *controllers.ReportController,
	adminController *controllers.AdminController,
) *gin.Engine {
	if os.Getenv("APP_ENV") != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestLogger())
	r.Use(m.Middleware())

	RegisterRoutes(r, m,
		accountController, planController, productController,
		billController, dashboardController, reportController, adminController)

	return r
}

func RegisterRoutes(r *gin.Engine, m *metrics.Metrics,
	accountController *controllers.AccountController,
	planController *controllers.PlanController,
	productController *controllers.ProductController,
	billController *controllers.BillController,
	dashboardController *controllers.DashboardController,
	reportController *controllers.ReportController,
	adminController *controllers.AdminController) {

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to Billing Software API",
			"version": "1.0.0",
		})
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", m.Handler())

	api := r.Group("/api")

	user := api.Group("/user")
	user.POST("/register", accountController.Register)
	user.POST("/login", accountController.Login)
	user.POST("/send-otp", accountController.SendOtp)
	user.POST("/verify-otp", accountController.VerifyOtp)
	user.POST("/send-reset-password-email", accountController.SendResetPasswordEmail)
	user.POST("/reset-password", accountController.ResetPassword)
	user.GET("/plans", planController.ListPlans)

	authed := api.Group("")
	authed.Use(middleware.JWTAuthMiddleware())

	authed.GET("/user/profile", accountController.GetProfile)
	authed.PUT("/user/profile", accountController.UpdateProfile)
	authed.POST("/user/change-password", accountController.ChangePassword)

	products := authed.Group("/products")
	products.GET("", productController.ListProducts)
	products.POST("", productController.CreateProduct)
	products.GET("/:id", productController.GetProduct)
	products.PUT("/:id", productController.UpdateProduct)
	products.PATCH("/:id", productController.UpdateProduct)
	products.DELETE("/:id", productController.DeleteProduct)

	bills := authed.Group("/bills")
	bills.GET("", billController.ListBills)
	bills.POST("", billController.CreateBill)
	bills.GET("/:id", billController.GetBill)
	bills.PUT("/:id", billController.UpdateBill)
	bills.DELETE("/:id", billController.DeleteBill)

	dashboard := authed.Group("/dashboard")
	dashboard.GET("/overview", dashboardController.Overview)
	dashboard.GET("/monthly-sales", dashboardController.MonthlySales)
	dashboard.GET("/daily-sales", dashboardController.DailySales)
	dashboard.GET("/product-insights", dashboardController.ProductInsights)
	dashboard.GET("/revenue-breakdown", dashboardController.RevenueBreakdown)
	dashboard.GET("/sales-report", reportController.SalesReport)
	dashboard.GET("/sales-report/export", reportController.ExportSalesReport)
	dashboard.GET("/inventory-report", reportController.InventoryReport)

	admin := api.Group("/admin")
	admin.Use(middleware.JWTAuthMiddleware(), middleware.RoleMiddleware(db_models.RoleAdmin))
	admin.GET("/users", adminController.ListUsers)
	admin.POST("/users/:id/activate", adminController.ActivateUser)
	admin.POST("/users/:id/deactivate", adminController.DeactivateUser)
	admin.POST("/plans", adminController.CreatePlan)
	admin.PUT("/plans/:id", adminController.UpdatePlan)
}
