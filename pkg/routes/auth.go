package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/redstar-games/politburo-backend/app/controllers"
)

func AuthRoutes(a *fiber.App) {
	route := a.Group("/user")

	route.Post("/register", controllers.CreateUser)
	route.Post("/login", controllers.Login)
}
