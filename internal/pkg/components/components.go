package components

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"bank-core/internal/api/middleware"
	"bank-core/internal/api/routes"
	"bank-core/internal/config"
	"bank-core/internal/domain/bank"
	"bank-core/internal/infrastructure/events"
	"bank-core/internal/infrastructure/messaging"
	"bank-core/internal/infrastructure/messaging/kafka"
	"bank-core/internal/pkg/logging"

	"github.com/gin-gonic/gin"
)

// Container holds all application components and their dependencies.
type Container struct {
	Config         *config.Config
	Logger         *logging.Logger
	Bank           *bank.Bank
	EventBroker    *events.Broker
	EventPublisher messaging.EventPublisher
	AuditConsumer  *messaging.AuditConsumer
	Router         *gin.Engine
	Server         *http.Server
}

var (
	instance     *Container
	instanceOnce sync.Once
	instanceErr  error
)

// GetInstance returns the singleton container instance.
func GetInstance() (*Container, error) {
	instanceOnce.Do(func() {
		instance, instanceErr = newContainer()
	})
	return instance, instanceErr
}

// New creates and initializes all application components.
func New() (*Container, error) {
	return GetInstance()
}

func newContainer() (*Container, error) {
	container := &Container{}

	if err := container.initConfig(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	if err := container.initLogger(); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := container.initBank(); err != nil {
		return nil, fmt.Errorf("failed to initialize bank: %w", err)
	}
	if err := container.initEventBroker(); err != nil {
		return nil, fmt.Errorf("failed to initialize event broker: %w", err)
	}
	if err := container.initEventPublisher(); err != nil {
		return nil, fmt.Errorf("failed to initialize event publisher: %w", err)
	}
	if err := container.initAuditConsumer(); err != nil {
		return nil, fmt.Errorf("failed to initialize audit consumer: %w", err)
	}
	if err := container.initServer(); err != nil {
		return nil, fmt.Errorf("failed to initialize server: %w", err)
	}

	logging.Info("all components initialized", nil)
	return container, nil
}

func (c *Container) initConfig() error {
	c.Config = config.Load()
	return nil
}

func (c *Container) initLogger() error {
	logging.Init(c.Config)
	c.Logger = logging.New(c.Config)

	logging.Info("logger initialized", map[string]interface{}{
		"level": c.Config.Logging.Level,
	})
	return nil
}

// initBank builds the in-memory banking core. N, the per-user admission
// bound, comes from config rather than bank.DefaultCapacity so it can be
// tuned per deployment without a rebuild.
func (c *Container) initBank() error {
	c.Bank = bank.New(c.Config.Bank.GatekeeperCapacity)

	logging.Info("bank core initialized", map[string]interface{}{
		"gatekeeper_capacity": c.Config.Bank.GatekeeperCapacity,
	})
	return nil
}

func (c *Container) initEventBroker() error {
	c.EventBroker = events.GetBroker()
	logging.Info("event broker initialized", nil)
	return nil
}

// initEventPublisher sets up the Kafka event publisher, falling back to
// a no-op publisher when Kafka is disabled or unreachable so the service
// can still start without a broker present.
func (c *Container) initEventPublisher() error {
	if !c.Config.Kafka.Enabled {
		logging.Info("kafka disabled, using no-op event publisher", nil)
		c.EventPublisher = messaging.NewNoOpEventPublisher()
		return nil
	}

	kafkaConfig := kafka.NewConfigFromEnv()

	publisher, err := messaging.NewKafkaEventPublisher(kafkaConfig)
	if err != nil {
		logging.Warn("failed to initialize kafka, using no-op event publisher", map[string]interface{}{
			"error": err.Error(),
		})
		c.EventPublisher = messaging.NewNoOpEventPublisher()
		return nil
	}

	c.EventPublisher = publisher
	logging.Info("kafka event publisher initialized", map[string]interface{}{
		"brokers": kafkaConfig.Brokers,
	})
	return nil
}

// initAuditConsumer starts the notification-only audit consumer when
// Kafka is enabled. It has no effect on the bank's correctness — it only
// logs what the publisher already sent.
func (c *Container) initAuditConsumer() error {
	if !c.Config.Kafka.Enabled {
		return nil
	}

	kafkaConfig := kafka.NewConfigFromEnv()

	consumer, err := messaging.NewAuditConsumer(kafkaConfig, c.Config.Kafka.ConsumerName)
	if err != nil {
		logging.Warn("failed to initialize audit consumer", map[string]interface{}{"error": err.Error()})
		return nil
	}

	if err := consumer.Start(); err != nil {
		logging.Warn("failed to start audit consumer", map[string]interface{}{"error": err.Error()})
		return nil
	}

	c.AuditConsumer = consumer
	return nil
}

func (c *Container) initServer() error {
	if os.Getenv("ENVIRONMENT") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	c.Router = gin.Default()
	c.Router.Use(middleware.CORS(c.Config))
	c.Router.Use(middleware.RateLimit(c.Config))

	routes.RegisterRoutes(c.Router, c)

	c.Server = &http.Server{
		Addr:           ":" + c.Config.Server.Port,
		Handler:        c.Router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	logging.Info("http server configured", map[string]interface{}{
		"port": c.Config.Server.Port,
	})
	return nil
}

// Start begins serving HTTP requests and blocks until shutdown.
func (c *Container) Start() error {
	logging.Info("starting http server", map[string]interface{}{
		"address": c.Server.Addr,
	})

	go func() {
		if err := c.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error("server failed to start", err, nil)
			os.Exit(1)
		}
	}()

	c.waitForShutdown()
	return nil
}

func (c *Container) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info("shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.Shutdown(ctx); err != nil {
		logging.Error("server forced to shutdown", err, nil)
	}

	logging.Info("server shutdown complete", nil)
}

// Shutdown gracefully stops the HTTP server and any background components.
func (c *Container) Shutdown(ctx context.Context) error {
	if err := c.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if c.AuditConsumer != nil {
		if err := c.AuditConsumer.Stop(); err != nil {
			logging.Error("failed to stop audit consumer", err, nil)
		}
	}

	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			logging.Error("failed to close event publisher", err, nil)
		}
	}

	return nil
}

// GetBank returns the banking core.
func (c *Container) GetBank() *bank.Bank {
	return c.Bank
}

// GetEventBroker returns the event broker.
func (c *Container) GetEventBroker() *events.Broker {
	return c.EventBroker
}

// GetConfig returns the configuration.
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetRouter returns the Gin router.
func (c *Container) GetRouter() *gin.Engine {
	return c.Router
}

// GetEventPublisher returns the event publisher.
func (c *Container) GetEventPublisher() messaging.EventPublisher {
	return c.EventPublisher
}
