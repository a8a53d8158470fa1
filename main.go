package main

import (
	"flight_desk/config"
	"flight_desk/database"
	"flight_desk/desk"
	"flight_desk/handler"
	"flight_desk/helper"
	"flight_desk/middleware"
	"flight_desk/router"
	"flight_desk/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jonboulle/clockwork"
)

func main() {
	log := utils.NewLogger(config.String("APP_ENV", "dev"))
	clock := clockwork.NewRealClock()

	database.ConnectDB(log)
	rdb := database.ConnectRedis(log)
	cache := helper.NewCache(rdb, config.Duration("CATALOG_CACHE_TTL", 5*time.Minute), log)
	catalog := helper.Init(database.DB, cache, log)

	if _, err := helper.StartCacheWarmer(catalog, config.Duration("CATALOG_WARM_EVERY", time.Minute), clock, log); err != nil {
		log.Fatal().Err(err).Msg("failed to start catalog warm-up")
	}
	defer helper.StopCacheWarmer()

	handler.ConfigureDesk(desk.Options{
		Clock:       clock,
		AuditWindow: config.Duration("DESK_AUDIT_WINDOW", desk.DefaultAuditWindow),
		Logger:      log,
	})

	app := fiber.New(fiber.Config{
		AppName: "flight_desk",
	})
	app.Use(recover.New())
	app.Use(middleware.RequestID(), middleware.Logger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: config.String("CORS_ORIGINS", "http://localhost:4200"),
		AllowMethods: "GET,POST,PUT,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       600,
	}))

	router.SetupRoutes(app)
	port := config.String("PORT", "8002")
	if err := app.Listen(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
