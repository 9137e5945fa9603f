package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/royalcourier/backoffice-backend/internal/database"
	"github.com/royalcourier/backoffice-backend/internal/handlers"
	"github.com/royalcourier/backoffice-backend/internal/middleware"
	"github.com/royalcourier/backoffice-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	// Initialize database with better error handling
	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Get underlying SQL DB instance
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis
	if err := services.InitRedis(); err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}

	// Initialize Storage (S3 or local fallback) for receipt archives
	if err := services.InitStorage(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize WebSocket hub
	hub := services.NewHub()
	go hub.Run()

	// Initialize router
	r := gin.Default()

	// Configure CORS
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	// Routes
	api := r.Group("/api")
	{
		// Public routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", handlers.Login(db))
			auth.POST("/change-password", handlers.ChangePassword(db))
		}

		// WebSocket connection
		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocketHandler(hub))

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			customers := protected.Group("/customers")
			{
				customers.GET("", handlers.GetCustomers(db))
				customers.POST("", handlers.CreateCustomer(db))
				customers.PUT("/:id", handlers.UpdateCustomer(db))
				customers.DELETE("/:id", handlers.DeleteCustomer(db))
				customers.GET("/phone/:phoneNumber", handlers.GetCustomerByPhone(db))
			}

			branch := protected.Group("/branch")
			{
				branch.GET("", handlers.GetBranches(db))
				branch.POST("/create", handlers.CreateBranch(db))
				branch.POST("/login", handlers.BranchLogin(db))
				branch.PUT("/change-password", handlers.BranchChangePassword(db))
				branch.GET("/:name", handlers.GetBranchByName(db))
			}

			payroll := protected.Group("/payroll")
			{
				payroll.GET("", handlers.GetPayrolls(db))
				payroll.POST("", handlers.CreatePayroll(db))
				payroll.PUT("/:id", handlers.UpdatePayroll(db))
				payroll.DELETE("/:id", handlers.DeletePayroll(db))
			}

			riders := protected.Group("/riders")
			{
				riders.GET("", handlers.GetRiders(db))
				riders.POST("", handlers.CreateRider(db))
				riders.PUT("/:id", handlers.UpdateRider(db))
				riders.DELETE("/:id", handlers.DeleteRider(db))
			}

			prices := protected.Group("/prices")
			{
				prices.GET("", handlers.GetPrices(db))
				prices.POST("", handlers.CreatePrice(db))
				prices.GET("/:id", handlers.GetPriceByID(db))
				prices.PUT("/:id", handlers.UpdatePrice(db))
				prices.DELETE("/:id", handlers.DeletePrice(db))
				prices.POST("/calculate", handlers.CalculatePrice(db))
			}

			shipments := protected.Group("/shipments")
			{
				shipments.GET("", handlers.GetShipments(db))
				shipments.POST("", handlers.CreateShipment(db, hub))
				shipments.GET("/:id", handlers.GetShipmentByID(db))
				shipments.PUT("/:id", handlers.UpdateShipmentStatus(db, hub))
				shipments.GET("/waybill/:waybillNumber", handlers.GetShipmentByWaybill(db))
			}

			receipts := protected.Group("/receipts")
			{
				receipts.GET("/:senderName", handlers.GetReceiptsBySender(db))
				receipts.GET("/latest/sender/:senderName", handlers.GetLatestReceiptBySender(db))
				receipts.GET("/waybill/:waybillNumber", handlers.GetReceiptByWaybill(db))
				receipts.DELETE("/:id", handlers.DeleteReceipt(db))
			}
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
