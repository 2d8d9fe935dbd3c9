package main

import (
	"campus/config"
	authControllers "campus/controllers/auth"
	"campus/database"
	adminRoutes "campus/routers/adminRoutes"
	authRoutes "campus/routers/authRoutes"
	examRoutes "campus/routers/examRoutes"
	unitRoutes "campus/routers/unitRoutes"
	userRoutes "campus/routers/userRoutes"
	"campus/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	if err := authControllers.InitLoginLimiter(); err != nil {
		log.Fatalf("Failed to initialise the login limiter: %v", err)
	}

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

	// Serve uploaded files
	app.Static("/uploads", config.AppConfig.UploadDir)

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	unitRoutes.SetupUnitRoutes(app)
	examRoutes.SetupExamRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	scheduler := utils.StartSchedulers()
	defer scheduler.Stop()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
