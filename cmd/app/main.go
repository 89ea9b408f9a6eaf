package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/wichananm65/qr-menu-backend/internal/auth"
	"github.com/wichananm65/qr-menu-backend/internal/config"
	"github.com/wichananm65/qr-menu-backend/internal/database"
	"github.com/wichananm65/qr-menu-backend/internal/order"
	"github.com/wichananm65/qr-menu-backend/internal/redisx"
	"github.com/wichananm65/qr-menu-backend/internal/restaurant"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalw("open database", "error", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalw("migrate database", "error", err)
	}

	idem := idempotencyStore(ctx, cfg)

	restaurantService := restaurant.NewService(restaurant.NewPostgresRepository(db))
	restaurantHandler := restaurant.NewHandler(restaurantService, auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL), cfg.AdminEmail, cfg.AdminPassword)

	orderService := order.NewService(order.NewPostgresRepository(db), restaurantService, order.WithIdempotency(idem))
	orderHandler := order.NewHandler(orderService, order.NewPDFRenderer())

	app := fiber.New(fiber.Config{AppName: "qr-menu-backend"})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))
	setupCORS(app, cfg.CORSOrigins)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	restaurantHandler.RegisterPublicRoutes(app)
	orderHandler.RegisterPublicRoutes(app)

	app.Use(auth.Middleware(cfg.JWTSecret))

	restaurantHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infow("listening", "addr", cfg.Addr)
		return app.Listen(cfg.Addr)
	})
	g.Go(func() error {
		return order.NewJanitor(orderService, cfg.CleanupInterval, cfg.CleanupRetentionDays).Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		return app.ShutdownWithTimeout(10 * time.Second)
	})

	if err := g.Wait(); err != nil {
		log.Errorw("server stopped", "error", err)
	}
}

func setupCORS(app *fiber.App, origins string) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, Idempotency-Key",
	}))
}

func idempotencyStore(ctx context.Context, cfg config.Config) order.IdempotencyStore {
	if cfg.RedisAddr == "" {
		return order.NewMemoryIdempotencyStore(cfg.IdempotencyTTL)
	}

	rdb, err := redisx.New(ctx, cfg.RedisAddr)
	if err != nil {
		log.Warnw("redis unavailable, keeping idempotency keys in process", "error", err)
		return order.NewMemoryIdempotencyStore(cfg.IdempotencyTTL)
	}
	return redisx.NewIdempotencyStore(rdb, cfg.IdempotencyTTL)
}
