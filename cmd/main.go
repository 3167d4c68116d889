package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	_ "github.com/franciscosanchezn/gin-cardapio-api/docs" // Import generated docs
	"github.com/franciscosanchezn/gin-cardapio-api/internal/config"
	"github.com/franciscosanchezn/gin-cardapio-api/internal/controllers"
	"github.com/franciscosanchezn/gin-cardapio-api/internal/database"
	"github.com/franciscosanchezn/gin-cardapio-api/internal/kitchen"
	"github.com/franciscosanchezn/gin-cardapio-api/internal/middleware"
	"github.com/franciscosanchezn/gin-cardapio-api/internal/models"
	"github.com/franciscosanchezn/gin-cardapio-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

var (
	db                *gorm.DB
	configuration     *config.Config
	productService    services.ProductService
	orderItemService  services.OrderItemService
	orderService      services.OrderService
	userService       services.UserService
	board             *kitchen.Board
	productController controllers.ProductController
	orderController   controllers.OrderController
	userController    *controllers.UserController
	kitchenController *controllers.KitchenController
)

// @title Cardapio API
// @version 1.0
// @description Restaurant order-management API: menu, orders and the kitchen board
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Set JWT secret from configuration
	middleware.SetJWTSecret(configuration.JWTSecret)

	// Initialize database connection
	setupDatabase(configuration)

	// Initialize services and controllers
	setupServices()

	// Start the kitchen board refresh loop
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go board.Run(ctx)

	// Initialize Gin router
	var router *gin.Engine = setupRouter()

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase initializes the database connection, migrates the schema
// and seeds the menu when empty
func setupDatabase(conf *config.Config) *gorm.DB {
	var err error
	db, err = database.InitDatabase(database.DatabaseConfig{
		Driver:   conf.DBDriver,
		Host:     conf.DBHost,
		Port:     conf.DBPort,
		User:     conf.DBUser,
		Password: conf.DBPassword,
		Name:     conf.DBName,
		SSLMode:  conf.DBSSLMode,
		Path:     conf.DBPath,
	})
	checkPanicErr(err)

	// Migrate the schema
	checkPanicErr(database.Migrate(db))

	// Seed only if the menu is empty
	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count == 0 {
		log.Info("Menu is empty, seeding initial data")
		seedDatabase()
	} else {
		log.Info("Menu already seeded with initial data")
	}
	return db
}

// seedDatabase seeds the menu with initial data
func seedDatabase() {
	products := []models.Product{
		{Name: "Picanha na Brasa", Description: "Picanha grelhada com farofa e vinagrete", Price: 64.90, Category: models.CategoryCarnes},
		{Name: "Frango a Passarinho", Description: "Frango frito com alho dourado", Price: 38.50, Category: models.CategoryFrangos},
		{Name: "Tilapia Grelhada", Description: "File de tilapia com legumes", Price: 45.00, Category: models.CategoryPeixe},
		{Name: "Espaguete ao Sugo", Description: "Massa artesanal com molho de tomate", Price: 32.00, Category: models.CategoryMassas},
		{Name: "Suco de Laranja", Description: "Natural, 500ml", Price: 9.50, Category: models.CategoryBebida},
		{Name: "Porcao de Mandioca", Description: "Mandioca frita crocante", Price: 24.00, Category: models.CategoryPorcao},
	}
	for _, product := range products {
		db.Create(&product)
	}
	log.Info("Menu seeded successfully")
}

// setupServices wires services, the kitchen board and controllers
func setupServices() {
	productService = services.NewProductService(db)
	orderItemService = services.NewOrderItemService(db)
	orderService = services.NewOrderService(db, orderItemService)
	userService = services.NewUserService(db)

	thresholds := models.UrgencyThresholds{
		Pending:   time.Duration(configuration.PendingUrgentSeconds) * time.Second,
		Preparing: time.Duration(configuration.PreparingUrgentSeconds) * time.Second,
	}
	board = kitchen.NewBoard(orderService, thresholds,
		time.Duration(configuration.KitchenRefreshSeconds)*time.Second)

	productController = controllers.NewProductController(productService)
	orderController = controllers.NewOrderController(orderService, orderItemService)
	userController = controllers.NewUserController(userService, configuration.JWTSecret, configuration.AdminCode)
	kitchenController = controllers.NewKitchenController(board)
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(middleware.RequestLogger())

	setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", userController.Register)
			auth.POST("/login", userController.Login)
		}

		publicApi := v1.Group("/public")
		{
			publicApi.GET("/products", productController.GetAllProducts)
			publicApi.GET("/products/:id", productController.GetProductByID)
		}

		// Order lifecycle routes
		orders := v1.Group("/orders")
		{
			orders.GET("", orderController.ListAll)
			orders.POST("", orderController.Create)
			orders.GET("/user/:userId", orderController.ListByUser)
			orders.GET("/:id/items", orderController.ListItems)
			orders.POST("/:id/items", orderController.AddItem)
			orders.DELETE("/:id/items", orderController.ClearItems)
			orders.PATCH("/:id/finalize", orderController.Finalize)
			orders.PATCH("/:id/cancel", orderController.Cancel)
			orders.DELETE("/:id", orderController.Delete)
		}

		// Kitchen board snapshot
		v1.GET("/kitchen/board", kitchenController.GetBoard)

		// Protected routes (requires JWT authentication)
		protectedApi := v1.Group("/protected")
		protectedApi.Use(middleware.JWTAuth())
		{
			protectedApi.PUT("/users/:id", userController.UpdateProfile)
			protectedApi.DELETE("/users/:id", userController.DeleteAccount)

			adminApi := protectedApi.Group("/admin")
			adminApi.Use(middleware.RequireRole("admin"))
			{
				adminApi.POST("/products", productController.CreateProduct)
				adminApi.PUT("/products/:id", productController.UpdateProduct)
				adminApi.DELETE("/products/:id", productController.DeleteProduct)
				adminApi.GET("/users", userController.ListUsers)
				adminApi.GET("/users/:id", userController.GetUserByID)
			}
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "gin-cardapio-api",
	})
}
