package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/rekamsehat-backend/internal/config"
	"github.com/stemsi/rekamsehat-backend/internal/handler"
	"github.com/stemsi/rekamsehat-backend/internal/middleware"
	"github.com/stemsi/rekamsehat-backend/internal/model"
	"github.com/stemsi/rekamsehat-backend/internal/response"
	"github.com/stemsi/rekamsehat-backend/internal/service"
)

// catalogMaxAge is the browser cache lifetime of catalog reads.
const catalogMaxAge = 5 * time.Minute

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Media    *handler.MediaHandler
	User     *handler.UserHandler
	Profile  *handler.ProfileHandler
	Catalog  *handler.CatalogHandler
	Penyakit *handler.PenyakitHandler
	Materi   *handler.MateriHandler
	Umum     *handler.UmumHandler
	System   *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) like the relay always has.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))

	brotliConfig := middleware.DefaultBrotliConfig
	brotliConfig.ExcludedPaths = []string{"/upload", "/api/v1/media/upload", "/api/v1/admin/materi/export"}
	router.Use(middleware.BrotliWithConfig(brotliConfig))

	// Health check.
	router.GET("/health", handlers.System.Health)

	// ─── 0. Relay (root, rate limited) ─────────────────────────────────
	relayLimiter := middleware.NewRateLimiter(cfg.RelayRatePerMinute, time.Minute)
	relay := router.Group("")
	relay.Use(relayLimiter.Middleware())
	if cfg.RelayRequireAuth {
		relay.Use(
			middleware.RequireJWT(authService),
			middleware.RequirePermission(model.PermissionMediaUpload),
		)
	}
	{
		relay.POST("/upload", handlers.Media.Upload)
		relay.POST("/delete", handlers.Media.Delete)
		relay.DELETE("/delete", handlers.Media.Delete)
	}

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)

		// Authenticated profile routes
		auth.POST("/logout", middleware.RequireJWT(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireJWT(authService), middleware.NoStore(), handlers.Auth.Me)
	}

	// ─── 2. Authenticated Group (any role) ─────────────────────────────
	api := router.Group("/api/v1")
	api.Use(middleware.RequireJWT(authService))
	{
		api.POST("/media/upload", middleware.RequirePermission(model.PermissionMediaUpload), handlers.Media.Upload)
		api.POST("/media/delete", middleware.RequirePermission(model.PermissionMediaUpload), handlers.Media.Delete)
		api.DELETE("/media/delete", middleware.RequirePermission(model.PermissionMediaUpload), handlers.Media.Delete)

		profile := api.Group("/profile")
		profile.Use(middleware.RequirePermission(model.PermissionProfileWrite), middleware.NoStore())
		{
			profile.PUT("", handlers.Profile.UpdateAccount)
			profile.GET("/spesifik", handlers.Profile.GetSpesifik)
			profile.PUT("/spesifik", handlers.Profile.UpsertSpesifik)
		}

		me := api.Group("/me")
		me.Use(middleware.RequirePermission(model.PermissionRecordsReadOwn), middleware.NoStore())
		{
			me.GET("/penyakit", handlers.Penyakit.ListMine)
			me.GET("/materi", handlers.Materi.ListMine)
		}

		catalog := api.Group("")
		catalog.Use(middleware.RequirePermission(model.PermissionCatalogRead), middleware.CacheControl(catalogMaxAge))
		{
			catalog.GET("/tingkatan", handlers.Catalog.ListTingkatan)
			catalog.GET("/jenis-penyakit", handlers.Catalog.ListJenis)
			catalog.GET("/jenis-penyakit/:id", handlers.Catalog.GetJenis)
		}

		api.GET("/umum", middleware.RequirePermission(model.PermissionUmumRead), handlers.Umum.List)
		api.GET("/umum/:id", middleware.RequirePermission(model.PermissionUmumRead), handlers.Umum.Get)
	}

	// ─── 3. Admin Group (JWT + RBAC) ───────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireJWT(authService), middleware.NoStore())
	{
		// Pending registrations
		adminAPI.GET("/pending-users",
			middleware.RequirePermission(model.PermissionUsersApprove),
			handlers.User.ListPending,
		)
		adminAPI.POST("/pending-users/:id/accept",
			middleware.RequirePermission(model.PermissionUsersApprove),
			handlers.User.AcceptPending,
		)
		adminAPI.DELETE("/pending-users/:id",
			middleware.RequirePermission(model.PermissionUsersApprove),
			handlers.User.RejectPending,
		)

		// User management
		adminAPI.GET("/users",
			middleware.RequirePermission(model.PermissionUsersRead),
			handlers.User.ListUsers,
		)
		adminAPI.GET("/users/:id",
			middleware.RequireAnyPermission(model.PermissionUsersRead, model.PermissionRecordsRead),
			handlers.User.GetUser,
		)
		adminAPI.PUT("/users/:id/role",
			middleware.RequirePermission(model.PermissionUsersRole),
			handlers.User.UpdateRole,
		)
		adminAPI.PUT("/users/:id/spesifik",
			middleware.RequirePermission(model.PermissionRecordsWrite),
			handlers.User.UpsertSpesifik,
		)
		adminAPI.DELETE("/users/:id",
			middleware.RequirePermission(model.PermissionUsersDelete),
			handlers.User.DeleteUser,
		)

		// Catalogs
		tingkatan := adminAPI.Group("/tingkatan")
		tingkatan.Use(middleware.RequirePermission(model.PermissionCatalogWrite))
		{
			tingkatan.POST("", handlers.Catalog.CreateTingkatan)
			tingkatan.PUT("/:id", handlers.Catalog.UpdateTingkatan)
			tingkatan.DELETE("/:id", handlers.Catalog.DeleteTingkatan)
		}

		jenis := adminAPI.Group("/jenis-penyakit")
		jenis.Use(middleware.RequirePermission(model.PermissionCatalogWrite))
		{
			jenis.POST("", handlers.Catalog.CreateJenis)
			jenis.PUT("/:id", handlers.Catalog.UpdateJenis)
			jenis.DELETE("/:id", handlers.Catalog.DeleteJenis)
			jenis.GET("/:id/obat", handlers.Catalog.ListObat)
			jenis.POST("/:id/obat", handlers.Catalog.CreateObat)
			jenis.PUT("/:id/obat/:obat_id", handlers.Catalog.UpdateObat)
			jenis.DELETE("/:id/obat/:obat_id", handlers.Catalog.DeleteObat)
		}

		// Records
		penyakit := adminAPI.Group("/penyakit")
		{
			penyakit.GET("", middleware.RequirePermission(model.PermissionRecordsRead), handlers.Penyakit.List)
			penyakit.GET("/:id", middleware.RequirePermission(model.PermissionRecordsRead), handlers.Penyakit.Get)
			penyakit.POST("", middleware.RequirePermission(model.PermissionRecordsWrite), handlers.Penyakit.Create)
			penyakit.PUT("/:id", middleware.RequirePermission(model.PermissionRecordsWrite), handlers.Penyakit.Update)
			penyakit.DELETE("/:id", middleware.RequirePermission(model.PermissionRecordsWrite), handlers.Penyakit.Delete)
		}

		materi := adminAPI.Group("/materi")
		{
			materi.GET("", middleware.RequirePermission(model.PermissionRecordsRead), handlers.Materi.List)
			materi.GET("/export", middleware.RequirePermission(model.PermissionRecordsRead), handlers.Materi.Export)
			materi.GET("/:id", middleware.RequirePermission(model.PermissionRecordsRead), handlers.Materi.Get)
			materi.POST("", middleware.RequirePermission(model.PermissionRecordsWrite), handlers.Materi.Create)
			materi.PUT("/:id", middleware.RequirePermission(model.PermissionRecordsWrite), handlers.Materi.Update)
			materi.DELETE("/:id", middleware.RequirePermission(model.PermissionRecordsWrite), handlers.Materi.Delete)
		}

		umum := adminAPI.Group("/umum")
		umum.Use(middleware.RequirePermission(model.PermissionUmumWrite))
		{
			umum.POST("", handlers.Umum.Create)
			umum.PUT("/:id", handlers.Umum.Update)
			umum.DELETE("/:id", handlers.Umum.Delete)
			umum.POST("/:id/files", handlers.Umum.AttachFile)
		}

		// System Monitoring
		adminAPI.GET("/system/metrics",
			middleware.RequirePermission(model.PermissionUsersRead),
			handlers.System.Metrics,
		)
	}

	return router
}
