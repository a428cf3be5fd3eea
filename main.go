package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"

	"github.com/redstar-games/politburo-backend/app/controllers"
	"github.com/redstar-games/politburo-backend/pkg/routes"
	"github.com/redstar-games/politburo-backend/platform/logging"
	socket "github.com/redstar-games/politburo-backend/platform/sockets"
)

func main() {
	logging.Init()

	app := fiber.New()

	app.Use(cors.New())
	routes.AuthRoutes(app)
	routes.GameRoutes(app)

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "secret"
	}
	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(secret),
	}))

	app.Get("/user/cur", controllers.Cur)

	go socket.CreateSocketIOServer()

	port := os.Getenv("PORT")
	if port == "" {
		port = "4101"
	}
	logging.L().WithField("port", port).Info("api listening")
	if err := app.Listen(":" + port); err != nil {
		logging.L().WithError(err).Fatal("api server stopped")
	}
}
