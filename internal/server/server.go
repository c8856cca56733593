package server

import (
	"usernotes/internal/config"
	"usernotes/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

type FiberServer struct {
	*fiber.App

	db database.Service
}

func New(db database.Service, cfg config.Config) *FiberServer {
	server := &FiberServer{
		App: fiber.New(fiber.Config{
			ServerHeader: config.AppName,
			AppName:      config.AppName,
			ErrorHandler: errorHandler,
		}),
		db: db,
	}
	server.App.Use(recover.New())
	server.App.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	server.App.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	server.App.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, X-Requested-With",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		MaxAge:       3600,
	}))
	server.App.Use(favicon.New())
	return server
}
