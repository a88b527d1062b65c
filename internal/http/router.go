package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ironhall/gymhub/internal/auth"
	"github.com/ironhall/gymhub/internal/cache"
	"github.com/ironhall/gymhub/internal/config"
	"github.com/ironhall/gymhub/internal/http/handlers"
	"github.com/ironhall/gymhub/internal/http/middlewares"
	"github.com/ironhall/gymhub/internal/observability"
	"github.com/ironhall/gymhub/internal/repo/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func NewRouter(log *slog.Logger, pool *pgxpool.Pool, pkgCache *cache.PackageCache, cfg config.Config) *gin.Engine {
	if cfg.Env != "dev" && gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// metrics registry for this engine
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	prom := observability.NewProm(reg)

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.MaxBodyBytes(64 << 10))
	r.Use(prom.GinHandleMiddleware())

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	}

	if cfg.OTLPEndpoint != "" {
		r.Use(otelgin.Middleware("gymhub"))
	}

	// health
	ping := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		if pool != nil {
			if err := pool.Ping(ctx); err != nil {
				return err
			}
		}

		return pkgCache.Ping(ctx)
	}

	health := handlers.NewHealthHandler(ping)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// wire up repositories
	usersRepo := postgres.NewUsersRepo(pool, prom)
	packagesRepo := postgres.NewPackagesRepo(pool, prom)
	bookingsRepo := postgres.NewBookingsRepo(pool, prom)
	refreshRepo := postgres.NewRefreshTokensRepo(pool, prom)

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.AccessTTL(), cfg.RefreshTTL())
	authGuard := middlewares.NewAuthMiddleware(jwtManager)

	// wire up handlers
	authHandler := handlers.NewAuthHandler(usersRepo, usersRepo, jwtManager, refreshRepo, cfg)
	profileHandler := handlers.NewProfileHandler(usersRepo, usersRepo)
	packagesHandler := handlers.NewPackagesHandler(packagesRepo, pkgCache)
	bookingsHandler := handlers.NewBookingsHandler(bookingsRepo, packagesRepo)

	requireJSON := middlewares.RequireJSON()

	// credential endpoints get a per-IP limiter
	authLimiter := middlewares.NewRateLimiter(10, time.Minute)
	limitByIP := authLimiter.RateLimiterMiddleware(middlewares.KeyByIP)

	// public surface
	r.GET("/", handlers.Home)
	r.GET("/packages", packagesHandler.ListPackages)
	r.GET("/packages/:id", packagesHandler.GetPackageByID)
	r.POST("/register", limitByIP, requireJSON, authHandler.Register)
	r.POST("/login", limitByIP, requireJSON, authHandler.Login)
	r.POST("/refresh", authHandler.Refresh)

	// session-required surface
	session := r.Group("/", authGuard.RequireAuth())
	session.GET("/logout", authHandler.Logout)
	session.GET("/profile", profileHandler.Get)
	session.POST("/profile", requireJSON, profileHandler.Update)
	session.GET("/book_package", bookingsHandler.ListBookable)
	session.POST("/book_package", requireJSON, bookingsHandler.Book)
	session.GET("/my_bookings", bookingsHandler.MyBookings)

	// admin surface; RequireAuth runs first so an anonymous request gets a
	// 401, not a 403
	admin := r.Group("/", authGuard.RequireAuth(), authGuard.RequireAdmin())
	admin.GET("/all_bookings", bookingsHandler.AllBookings)
	admin.GET("/admin", handlers.AdminHome)
	admin.POST("/admin/add_package", requireJSON, packagesHandler.CreatePackage)
	admin.GET("/admin/manage_packages", packagesHandler.ListPackages)
	admin.GET("/admin/edit_package/:id", packagesHandler.GetPackageByID)
	admin.POST("/admin/edit_package/:id", requireJSON, packagesHandler.UpdatePackage)
	admin.POST("/admin/delete_package/:id", packagesHandler.DeletePackage)

	return r
}
