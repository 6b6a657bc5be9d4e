package config

import (
	"marketplace-service/src/internal/delivery/http"
	"marketplace-service/src/internal/delivery/http/middleware"
	"marketplace-service/src/internal/delivery/http/route"
	"marketplace-service/src/internal/gateway/messaging"
	"marketplace-service/src/internal/repository"
	"marketplace-service/src/internal/usecase"
	"marketplace-service/src/pkg/databases/mysql"
	kafkaPkgConfluent "marketplace-service/src/pkg/kafka/confluent"
	"marketplace-service/src/pkg/log"
	"marketplace-service/src/pkg/metrics"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
)

type BootstrapConfig struct {
	DB          mysql.DBInterface
	App         *fiber.App
	Log         log.Log
	Validate    *validator.Validate
	Config      *viper.Viper
	Producer    kafkaPkgConfluent.Producer
	Redis       redis.UniversalClient
	AsynqClient *asynq.Client
	Async       *asynq.ServeMux
}

func Bootstrap(config *BootstrapConfig) {
	m := metrics.Registry(config.Config.GetString("metrics.namespace"))

	// setup repositories
	userRepository := repository.NewUserRepository(config.DB)
	orderRepository := repository.NewOrderRepository(config.DB)
	requestRepository := repository.NewRequestRepository(config.DB)
	ticketRepository := repository.NewTicketRepository(config.DB)
	chatRepository := repository.NewChatRepository(config.DB)

	orderProducer := messaging.NewOrderProducer(config.Producer, config.Log)
	walletProducer := messaging.NewWalletProducer(config.Producer, config.Log)

	// setup use cases
	orderUseCase := usecase.NewOrderUseCase(
		config.Log,
		config.Validate,
		orderRepository,
		userRepository,
		config.Config,
		config.Redis,
		orderProducer,
		config.AsynqClient,
		m,
	)

	walletUseCase := usecase.NewWalletUseCase(
		config.Log,
		config.Validate,
		requestRepository,
		userRepository,
		config.Config,
		walletProducer,
		m,
	)

	ticketUseCase := usecase.NewTicketUseCase(
		config.Log,
		config.Validate,
		ticketRepository,
	)

	chatUseCase := usecase.NewChatUseCase(
		config.Log,
		config.Validate,
		chatRepository,
		config.Redis,
		m,
	)

	userUseCase := usecase.NewUserUseCase(
		config.Log,
		config.Validate,
		userRepository,
		orderRepository,
	)

	// setup controllers
	userController := http.NewUserController(userUseCase, config.Log)
	orderController := http.NewOrderController(orderUseCase, config.Log)
	walletController := http.NewWalletController(walletUseCase, config.Log)
	adminController := http.NewAdminController(walletUseCase, config.Log)
	ticketController := http.NewTicketController(ticketUseCase, config.Log)
	chatController := http.NewChatController(chatUseCase, config.Log)

	// setup middleware
	authMiddleware := middleware.VerifyBearer(config.Config)
	activeMiddleware := middleware.VerifyActive(userRepository, config.Log)

	config.Async.HandleFunc(usecase.TypeDeliveryNotice, orderUseCase.HandleDeliveryNotice)

	routeConfig := route.RouteConfig{
		App:              config.App,
		UserController:   userController,
		OrderController:  orderController,
		WalletController: walletController,
		AdminController:  adminController,
		TicketController: ticketController,
		ChatController:   chatController,
		AuthMiddleware:   authMiddleware,
		ActiveMiddleware: activeMiddleware,
	}
	routeConfig.Setup()
}
