package routes

import (
	"log"
	"os"
	"strconv"

	_ "paycore/docs" // This will be auto-generated
	"paycore/internal/adapter/http/handlers"
	repository2 "paycore/internal/adapter/persistence/repository"
	"paycore/internal/infrastructure/database"
	"paycore/internal/infrastructure/gateways"
	"paycore/internal/usecase"
	"paycore/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const defaultPort = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(serverPort()))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func serverPort() int {
	if raw := os.Getenv("SERVER_PORT"); raw != "" {
		if port, err := strconv.Atoi(raw); err == nil && port > 0 {
			return port
		}
		log.Printf("[payment][routes] invalid SERVER_PORT=%q, using %d", raw, defaultPort)
	}
	return defaultPort
}

func getRoutes() {
	var (
		orders  interfaces.IPaymentOrderStore
		records interfaces.IIdempotencyStore
		events  interfaces.IWebhookEventStore
	)

	if os.Getenv("PAYMENT_STORE") == "memory" {
		log.Printf("[payment][routes] using in-memory store")
		mem := repository2.NewMemoryStore()
		orders, records, events = mem, mem, mem
	} else {
		ddb := database.ConnectDynamoDB()
		orders = repository2.NewPaymentOrderDynamoRepository(ddb)
		records = repository2.NewIdempotencyDynamoRepository(ddb)
		events = repository2.NewWebhookEventDynamoRepository(ddb)
	}

	registry := gateways.NewRegistryFromEnv()

	paymentUseCase := usecase.NewPaymentUseCase(registry, orders, records, events)

	paymentHandler := handlers.NewPaymentHandler(paymentUseCase)
	webhookHandler := handlers.NewWebhookHandler(paymentUseCase)
	gatewayHandler := handlers.NewGatewayHandler(paymentUseCase)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPaymentRoutes(v1, paymentHandler, webhookHandler, gatewayHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
