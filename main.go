package main

import (
	"amc/config"
	"amc/database"
	adminRoutes "amc/routers/adminRoutes"
	authRoutes "amc/routers/authRoutes"
	paymentRoutes "amc/routers/paymentRoutes"
	publicRoutes "amc/routers/publicRoutes"
	studentRoutes "amc/routers/studentRoutes"
	"amc/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	utils.InitPaymentGateway()
	utils.InitializeReminderScheduler()

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

	// Serve static files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	publicRoutes.SetupPublicRoutes(app)
	studentRoutes.SetupStudentRoutes(app)
	adminRoutes.SetupAdminRoutes(app)
	paymentRoutes.SetupPaymentRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
