package web

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Joshtri/SIMTernakAyam-API-sub000/pkg/logger"
	"github.com/Joshtri/SIMTernakAyam-API-sub000/repositories"
	"github.com/Joshtri/SIMTernakAyam-API-sub000/services"
	"github.com/Joshtri/SIMTernakAyam-API-sub000/web/handlers"
	"github.com/Joshtri/SIMTernakAyam-API-sub000/web/middleware"
)

// Server represents the web server
type Server struct {
	app *fiber.App
	log *zap.Logger
}

// NewServer wires services, handlers, and middleware into a Fiber app.
func NewServer(db *gorm.DB, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName: "SIMTernakAyam API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
			}
			if code == fiber.StatusInternalServerError {
				log.Error("request failed",
					zap.String("method", c.Method()),
					zap.String("path", c.Path()),
					zap.Error(err))
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	// Middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	app.Use(cors.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} ${error}\n",
	}))
	app.Use(middleware.SQLDebug())

	server := &Server{app: app, log: log}
	server.setupRoutes(db)
	return server
}

func (s *Server) setupRoutes(db *gorm.DB) {
	enclosureRepo := repositories.NewEnclosureRepository(db)
	eventRepo := repositories.NewStockEventRepository(db)
	relocationRepo := repositories.NewRelocationRepository(db)
	costRepo := repositories.NewCostRepository(db)
	userRepo := repositories.NewUserRepository(db)

	ledger := services.NewLedgerService(db, logger.Named(s.log, "ledger"))
	depletions := services.NewDepletionService(db, logger.Named(s.log, "depletion"))
	relocations := services.NewRelocationService(db, logger.Named(s.log, "relocation"))
	prices := services.NewPriceService(db, logger.Named(s.log, "price"))
	profit := services.NewProfitService(db, prices, logger.Named(s.log, "profit"))
	dashboard := services.NewDashboardService(db, logger.Named(s.log, "dashboard"))

	enclosureHandler := handlers.NewEnclosureHandler(enclosureRepo, ledger, dashboard)
	batchHandler := handlers.NewBatchHandler(ledger, eventRepo)
	depletionHandler := handlers.NewDepletionHandler(depletions)
	relocationHandler := handlers.NewRelocationHandler(relocations, relocationRepo)
	priceHandler := handlers.NewPriceHandler(prices)
	costHandler := handlers.NewCostHandler(costRepo)
	profitHandler := handlers.NewProfitHandler(profit)
	dashboardHandler := handlers.NewDashboardHandler(dashboard)

	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := s.app.Group("/api/v1")

	api.Get("/enclosures", enclosureHandler.List)
	api.Post("/enclosures", enclosureHandler.Create)
	api.Get("/enclosures/:id", enclosureHandler.Get)
	api.Put("/enclosures/:id", enclosureHandler.Update)
	api.Get("/enclosures/:id/live", enclosureHandler.Live)
	api.Get("/enclosures/:id/stats", enclosureHandler.Stats)
	api.Post("/enclosures/:id/deaths", depletionHandler.RecordEnclosureDeath)
	api.Post("/enclosures/:id/harvests", depletionHandler.RecordEnclosureHarvest)

	api.Post("/batches", batchHandler.Enter)
	api.Get("/batches/:id/live", batchHandler.Live)
	api.Get("/batches/:id/events", batchHandler.Events)

	api.Post("/deaths", depletionHandler.RecordDeath)
	api.Post("/harvests", depletionHandler.RecordHarvest)
	api.Put("/events/:id", depletionHandler.UpdateEvent)
	api.Delete("/events/:id", depletionHandler.DeleteEvent)
	api.Get("/harvests/:id/profit", profitHandler.Compute)

	api.Get("/relocations", relocationHandler.List)
	api.Post("/relocations", relocationHandler.Relocate)
	api.Post("/relocations/:id/cancel", relocationHandler.Cancel)

	api.Post("/prices", priceHandler.Add)
	api.Get("/prices/resolve", priceHandler.Resolve)
	api.Post("/prices/:id/activate", priceHandler.Activate)
	api.Post("/prices/:id/deactivate", priceHandler.Deactivate)

	api.Get("/costs", costHandler.List)
	api.Post("/costs", costHandler.Create)

	api.Get("/users", func(c *fiber.Ctx) error {
		users, err := userRepo.List(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(users)
	})

	api.Get("/dashboard/overview", dashboardHandler.Overview)
	s.app.Get("/debug/sql", dashboardHandler.RecentQueries)
}

// Start runs the server on the given port.
func (s *Server) Start(port string) error {
	return s.app.Listen(fmt.Sprintf(":%s", port))
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
