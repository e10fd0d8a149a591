package main

import (
	"log"

	"mcan/config"
	"mcan/database"
	authRoutes "mcan/routers/authRoutes"
	memberRoutes "mcan/routers/memberRoutes"
	paymentRoutes "mcan/routers/paymentRoutes"
	propertyRoutes "mcan/routers/propertyRoutes"
	userRoutes "mcan/routers/userRoutes"
	"mcan/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded photos and documents
	app.Static("/uploads", "./public/uploads")

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	memberRoutes.SetupMemberRoutes(app)
	paymentRoutes.SetupPaymentRoutes(app)
	propertyRoutes.SetupPropertyRoutes(app)

	utils.InitializeOverdueScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
