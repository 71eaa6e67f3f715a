package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/checkout"
	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/config"
	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/database"
	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/handlers"
	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/middleware"
	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/notify"
	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/pricing"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// Initialize session store
	middleware.InitSessionStore(cfg.JWTSecret)

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.SessionMiddleware())

	priceTable := pricing.Default()

	// Notification collaborators; anything unconfigured degrades to a
	// logging stub so development runs without external accounts.
	emailSender := notify.NewGomailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.FromEmail)
	invoices := notify.NewPDFInvoiceGenerator(cfg.SupplierName, cfg.SupplierAddress, cfg.BankAccount)
	files := notify.NewHTTPFileHost(cfg.FileHostURL, cfg.FileHostAPIKey)
	points := notify.NewPacketaClient(cfg.PacketaAPIURL, cfg.PacketaAPIKey)

	var analytics notify.Analytics = notify.NopAnalytics{}
	if cfg.AnalyticsURL != "" {
		analytics = notify.NewHTTPAnalytics(cfg.AnalyticsURL, cfg.AnalyticsID)
	}

	pipeline := notify.NewPipeline(invoices, files, emailSender, analytics, cfg.OperatorEmail, cfg.BankAccount)
	minter := checkout.NewNumberMinter(database.NewSequenceQueries(db))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg.JWTSecret)
	adminHandler := handlers.NewAdminHandler(db)
	publicHandler := handlers.NewPublicHandler(db, priceTable, points)
	cartHandler := handlers.NewCartHandler(db, priceTable, analytics)
	checkoutHandler := handlers.NewCheckoutHandler(db, minter, priceTable, pipeline, points, analytics)
	feedHandler := handlers.NewFeedHandler(db, cfg.BaseURL)

	// Public routes
	public := r.Group("/api")
	{
		public.GET("/products", publicHandler.GetProducts)
		public.GET("/products/:id", publicHandler.GetProduct)
		public.GET("/checkout/options", publicHandler.GetCheckoutOptions)
		public.GET("/shipping/points/:id", publicHandler.GetPickupPoint)
	}

	// Cart routes (public but require session)
	cart := r.Group("/api/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/add", cartHandler.AddToCart)
		cart.PUT("/update/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/remove/:id", cartHandler.RemoveFromCart)
		cart.POST("/clear", cartHandler.ClearCart)
		cart.GET("/count", cartHandler.GetCartCount)
	}

	// Checkout routes
	checkoutRoutes := r.Group("/api/checkout")
	{
		checkoutRoutes.GET("/summary", checkoutHandler.GetSummary)
		checkoutRoutes.POST("", checkoutHandler.PlaceOrder)
	}
	r.GET("/api/orders/:number", checkoutHandler.GetOrder)

	// Auth routes
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
		auth.GET("/profile", middleware.AuthMiddleware(cfg.JWTSecret), authHandler.Profile)
	}

	// Admin routes
	admin := r.Group("/api/admin")
	admin.Use(middleware.AdminMiddleware(cfg.JWTSecret))
	{
		// User management
		admin.GET("/users", adminHandler.GetUsers)
		admin.POST("/users", adminHandler.CreateUser)
		admin.PUT("/users/:id", adminHandler.UpdateUser)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)

		// Product management
		admin.GET("/products", adminHandler.GetProducts)
		admin.POST("/products", adminHandler.CreateProduct)
		admin.PUT("/products/:id", adminHandler.UpdateProduct)
		admin.DELETE("/products/:id", adminHandler.DeleteProduct)
		admin.PATCH("/products/:id/toggle", adminHandler.ToggleProductActive)

		// Variant management
		admin.POST("/variants", adminHandler.CreateVariant)
		admin.PUT("/variants/:id", adminHandler.UpdateVariant)
		admin.DELETE("/variants/:id", adminHandler.DeleteVariant)

		// Order management
		admin.GET("/orders", adminHandler.GetOrders)
		admin.PATCH("/orders/:id/status", adminHandler.UpdateOrderStatus)

		// Marketing feed exports
		admin.GET("/feeds/heureka.xml", feedHandler.Heureka)
		admin.GET("/feeds/sitemap.xml", feedHandler.Sitemap)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
