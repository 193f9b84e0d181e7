// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/allisson/outreach/internal/broker"
	"github.com/allisson/outreach/internal/clock"
	"github.com/allisson/outreach/internal/config"
	"github.com/allisson/outreach/internal/database"
	"github.com/allisson/outreach/internal/http"
	"github.com/allisson/outreach/internal/metrics"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config
	clock  clock.Clock

	// Infrastructure
	logger    *slog.Logger
	logFile   *lumberjack.Logger
	db        *sql.DB
	redis     *redis.Client
	broker    *broker.Client
	txManager database.TxManager

	// Metrics
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	pipelineComponents
	sendingComponents
	replyComponents

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	mu                  sync.Mutex
	loggerInit          sync.Once
	dbInit              sync.Once
	redisInit           sync.Once
	brokerInit          sync.Once
	txManagerInit       sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		clock:      clock.System(),
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Clock returns the time source shared by every component.
func (c *Container) Clock() clock.Clock {
	return c.clock
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.setInitError("db", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return c.db, c.initError("db")
}

// Redis returns the shared Redis client, or nil when REDIS_URL is not set.
func (c *Container) Redis() (*redis.Client, error) {
	var err error
	c.redisInit.Do(func() {
		c.redis, err = c.initRedis()
		if err != nil {
			c.setInitError("redis", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return c.redis, c.initError("redis")
}

// Broker returns the RabbitMQ client with its topology declared, or nil when AMQP_URL
// is not set.
func (c *Container) Broker() (*broker.Client, error) {
	var err error
	c.brokerInit.Do(func() {
		c.broker, err = c.initBroker()
		if err != nil {
			c.setInitError("broker", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return c.broker, c.initError("broker")
}

// TxManager returns the transaction manager.
// It requires a database connection to be initialized first.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.setInitError("txManager", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return c.txManager, c.initError("txManager")
}

// MetricsProvider returns the Prometheus-backed meter provider, or nil when metrics
// are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		c.metricsProvider, err = metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.setInitError("metricsProvider", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return c.metricsProvider, c.initError("metricsProvider")
}

// BusinessMetrics returns the outreach counters, a no-op when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.setInitError("businessMetrics", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return c.businessMetrics, c.initError("businessMetrics")
}

// HTTPServer returns the API server with its router built.
func (c *Container) HTTPServer(ctx context.Context) (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer(ctx)
		if err != nil {
			c.setInitError("httpServer", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return c.httpServer, c.initError("httpServer")
}

// MetricsServer returns the Prometheus scrape server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.setInitError("metricsServer", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return c.metricsServer, c.initError("metricsServer")
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.broker != nil {
		if err := c.broker.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("broker close: %w", err))
		}
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("redis close: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if c.logFile != nil {
		if err := c.logFile.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("log file close: %w", err))
		}
	}

	return errors.Join(shutdownErrors...)
}

func (c *Container) setInitError(name string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initErrors[name] = err
}

func (c *Container) initError(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initErrors[name]
}

// initLogger creates a JSON logger writing to stdout, or to a rotated file when
// LOG_FILE is set.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	var out io.Writer = os.Stdout
	if c.config.LogFile != "" {
		c.logFile = &lumberjack.Logger{
			Filename:   c.config.LogFile,
			MaxSize:    c.config.LogFileMaxSizeMB,
			MaxBackups: c.config.LogFileMaxBackups,
			MaxAge:     c.config.LogFileMaxAgeDays,
			Compress:   true,
		}
		out = c.logFile
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func (c *Container) initRedis() (*redis.Client, error) {
	if c.config.RedisURL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(c.config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	c.Logger().Info("connected to redis", slog.String("addr", opts.Addr))
	return client, nil
}

func (c *Container) initBroker() (*broker.Client, error) {
	if c.config.AMQPURL == "" {
		return nil, nil
	}

	client, err := broker.Dial(c.config.AMQPURL, c.Logger())
	if err != nil {
		return nil, err
	}
	if err := client.DeclareExchange(c.config.AMQPNotifyExchange); err != nil {
		_ = client.Close()
		return nil, err
	}
	if err := client.DeclareQueue(c.config.AMQPReplyQueue); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// initTxManager creates the transaction manager using the database connection.
func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return businessMetrics, nil
}

// initHTTPServer creates the HTTP server with all its dependencies.
func (c *Container) initHTTPServer(ctx context.Context) (*http.Server, error) {
	handlers, err := c.handlers()
	if err != nil {
		return nil, err
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, c.Logger())
	server.SetupRouter(ctx, c.config, handlers, metricsProvider)
	return server, nil
}

func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	if provider == nil {
		return nil, nil
	}

	counters, err := c.DailyMetricUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get daily metrics for metrics server: %w", err)
	}
	defaultLimit := c.config.SendDefaultDailyLimit
	err = provider.RegisterDailyGauges(func(ctx context.Context) (metrics.DailyCounts, error) {
		today, err := counters.Today(ctx)
		if err != nil {
			return metrics.DailyCounts{}, err
		}
		return metrics.DailyCounts{
			Sent:     today.SentCount,
			Replies:  today.ReplyCount,
			Positive: today.PositiveCount,
			Bounces:  today.BounceCount,
			Limit:    defaultLimit,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider.Handler()), nil
}
