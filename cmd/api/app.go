package main

import (
	"os"
	"time"

	"github.com/bsm/redislock"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/firmdesk/firmdesk-backend/docs"
	"github.com/firmdesk/firmdesk-backend/internal/adapter/api/controller"
	"github.com/firmdesk/firmdesk-backend/internal/adapter/api/route"
	"github.com/firmdesk/firmdesk-backend/internal/adapter/repository"
	"github.com/firmdesk/firmdesk-backend/internal/infrastructure/database"
	"github.com/firmdesk/firmdesk-backend/internal/service/fulfillment"
	"github.com/firmdesk/firmdesk-backend/pkg/auth"
	"github.com/firmdesk/firmdesk-backend/pkg/logger"
	"github.com/firmdesk/firmdesk-backend/pkg/middleware"
	"github.com/firmdesk/firmdesk-backend/pkg/validation"
)

// App representa a aplicação e suas dependências
type App struct {
	router *gin.Engine
	pool   *pgxpool.Pool
	redis  *redis.Client
	log    logger.Logger
}

// NewApp cria uma nova instância do aplicativo
func NewApp() (*App, error) {
	log := logger.NewLogger()

	// Conectar ao banco de dados
	pool, err := database.NewPostgresDB()
	if err != nil {
		return nil, err
	}

	// Aplicar migrações pendentes
	if os.Getenv("SKIP_MIGRATIONS") != "true" {
		if err := database.RunMigrations(); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info("migrações aplicadas com sucesso")
	}

	// Cliente Redis para o lock distribuído de pedidos (opcional)
	var redisClient *redis.Client
	var locker *redislock.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		locker = redislock.New(redisClient)
		log.Info("lock distribuído habilitado", "addr", addr)
	}

	// Validações customizadas para campos decimais
	validation.RegisterDecimalType()

	// Repositórios e serviço de orquestração
	stores := repository.NewStores(pool)
	txManager := repository.NewTxManager(pool)
	service := fulfillment.NewService(txManager, stores, locker, log)

	firmRepo := repository.NewFirmRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	stockRepo := repository.NewStockRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	jwtService, err := auth.NewJWTService()
	if err != nil {
		pool.Close()
		return nil, err
	}
	authMw := middleware.AuthMiddleware(jwtService)

	// Controllers
	authController := controller.NewAuthController(firmRepo, userRepo, jwtService, log)
	userController := controller.NewUserController(userRepo, log)
	customerController := controller.NewCustomerController(customerRepo, log)
	categoryController := controller.NewCategoryController(categoryRepo, log)
	stockController := controller.NewStockController(stockRepo, log)
	orderController := controller.NewOrderController(service, log)
	orderItemController := controller.NewOrderItemController(service, log)
	deliveryController := controller.NewDeliveryController(service, log)
	paymentController := controller.NewPaymentController(service, log)
	invoiceController := controller.NewInvoiceController(service, firmRepo, customerRepo, log)
	dashboardController := controller.NewDashboardController(dashboardRepo, log)

	// Router e middlewares globais
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	// Documentação Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Rotas da API
	api := router.Group("/api/v1")
	route.RegisterAuthRoutes(api, authController, authMw)
	route.RegisterUserRoutes(api, userController, authMw)
	route.RegisterCustomerRoutes(api, customerController, authMw)
	route.RegisterCategoryRoutes(api, categoryController, authMw)
	route.RegisterStockRoutes(api, stockController, authMw)
	route.RegisterOrderRoutes(api, orderController, orderItemController, deliveryController, paymentController, invoiceController, authMw)
	route.RegisterOrderItemRoutes(api, orderItemController, deliveryController, authMw)
	route.RegisterDeliveryRoutes(api, deliveryController, authMw)
	route.RegisterPaymentRoutes(api, paymentController, authMw)
	route.RegisterDashboardRoutes(api, dashboardController, authMw)

	return &App{
		router: router,
		pool:   pool,
		redis:  redisClient,
		log:    log,
	}, nil
}

// Start inicia o servidor HTTP
func (a *App) Start() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	a.log.Info("servidor iniciado", "port", port)
	return a.router.Run(":" + port)
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
}
