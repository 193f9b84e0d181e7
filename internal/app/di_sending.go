package app

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/allisson/outreach/internal/delivery"
	"github.com/allisson/outreach/internal/lock"
	riskService "github.com/allisson/outreach/internal/risk/service"
	sendingUseCase "github.com/allisson/outreach/internal/sending/usecase"
)

// keyPrefix namespaces every Redis key written by this application.
const keyPrefix = "outreach:"

type sendingComponents struct {
	locker           lock.Locker
	throttle         riskService.Throttle
	deliveryProvider delivery.Provider
	riskController   riskService.RiskController
	sendUseCase      sendingUseCase.SendUseCase

	lockerInit           sync.Once
	throttleInit         sync.Once
	deliveryProviderInit sync.Once
	riskControllerInit   sync.Once
	sendUseCaseInit      sync.Once
}

// Locker returns the per-lead lock: Redis-backed when Redis is configured so that
// several instances serialize on the same lead, in-process otherwise.
func (c *Container) Locker() (lock.Locker, error) {
	var err error
	c.lockerInit.Do(func() {
		c.locker, err = c.initLocker()
		if err != nil {
			c.setInitError("locker", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return c.locker, c.initError("locker")
}

// Throttle returns the minimum-interval gate shared by every send.
func (c *Container) Throttle() (riskService.Throttle, error) {
	var err error
	c.throttleInit.Do(func() {
		c.throttle, err = c.initThrottle()
		if err != nil {
			c.setInitError("throttle", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return c.throttle, c.initError("throttle")
}

// DeliveryProvider returns the outbound email transport selected by DELIVERY_PROVIDER.
func (c *Container) DeliveryProvider() (delivery.Provider, error) {
	var err error
	c.deliveryProviderInit.Do(func() {
		c.deliveryProvider, err = c.initDeliveryProvider()
		if err != nil {
			c.setInitError("deliveryProvider", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return c.deliveryProvider, c.initError("deliveryProvider")
}

// RiskController returns the admission control consulted before every send.
func (c *Container) RiskController() (riskService.RiskController, error) {
	var err error
	c.riskControllerInit.Do(func() {
		c.riskController, err = c.initRiskController()
		if err != nil {
			c.setInitError("riskController", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return c.riskController, c.initError("riskController")
}

// SendUseCase returns the send orchestrator, wrapped with metrics.
func (c *Container) SendUseCase() (sendingUseCase.SendUseCase, error) {
	var err error
	c.sendUseCaseInit.Do(func() {
		c.sendUseCase, err = c.initSendUseCase()
		if err != nil {
			c.setInitError("sendUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return c.sendUseCase, c.initError("sendUseCase")
}

func (c *Container) initLocker() (lock.Locker, error) {
	client, err := c.Redis()
	if err != nil {
		return nil, fmt.Errorf("failed to get redis for locker: %w", err)
	}
	if client == nil {
		return lock.NewKeyedMutex(), nil
	}
	return lock.NewRedisLocker(client, keyPrefix, c.config.SendLockTTL), nil
}

func (c *Container) initThrottle() (riskService.Throttle, error) {
	client, err := c.Redis()
	if err != nil {
		return nil, fmt.Errorf("failed to get redis for throttle: %w", err)
	}
	if client == nil {
		return riskService.NewMemoryThrottle(c.clock, c.config.SendMinInterval), nil
	}
	// The in-flight slot must outlive the slowest delivery it guards.
	inFlightTTL := c.config.SendTimeout + c.config.SendMinInterval
	return riskService.NewRedisThrottle(client, c.clock, keyPrefix, c.config.SendMinInterval, inFlightTTL), nil
}

func (c *Container) initDeliveryProvider() (delivery.Provider, error) {
	switch c.config.DeliveryProvider {
	case "smtp":
		return delivery.NewSMTPProvider(delivery.SMTPConfig{
			Host:     c.config.SMTPHost,
			Port:     c.config.SMTPPort,
			Username: c.config.SMTPUsername,
			Password: c.config.SMTPPassword,
			From:     c.config.SMTPFrom,
		}), nil
	case "log":
		c.Logger().Warn("delivery provider is log, emails are not sent")
		return delivery.NewLogProvider(c.clock, c.Logger()), nil
	default:
		return nil, fmt.Errorf("unsupported delivery provider: %s", c.config.DeliveryProvider)
	}
}

func (c *Container) initRiskController() (riskService.RiskController, error) {
	campaignRepo, err := c.CampaignRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign repository for risk controller: %w", err)
	}

	counters, err := c.DailyMetricUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get daily metrics for risk controller: %w", err)
	}

	throttle, err := c.Throttle()
	if err != nil {
		return nil, err
	}

	return riskService.NewRiskController(
		campaignRepo,
		counters,
		throttle,
		c.config.SendDefaultDailyLimit,
		c.Logger(),
	), nil
}

func (c *Container) initSendUseCase() (sendingUseCase.SendUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for send use case: %w", err)
	}

	leadRepo, err := c.LeadRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get lead repository for send use case: %w", err)
	}

	eventLog, err := c.EventLogUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get event log for send use case: %w", err)
	}

	risk, err := c.RiskController()
	if err != nil {
		return nil, err
	}

	provider, err := c.DeliveryProvider()
	if err != nil {
		return nil, err
	}

	locker, err := c.Locker()
	if err != nil {
		return nil, err
	}

	baseUseCase := sendingUseCase.NewSendUseCase(
		sendingUseCase.Config{
			SendTimeout:      c.config.SendTimeout,
			BatchConcurrency: c.config.SendBatchConcurrency,
		},
		txManager,
		leadRepo,
		eventLog,
		risk,
		provider,
		locker,
		c.clock,
		c.Logger(),
	)

	c.Logger().Info("send orchestrator ready",
		slog.String("delivery_provider", c.config.DeliveryProvider),
		slog.Duration("min_interval", c.config.SendMinInterval),
		slog.Int("default_daily_limit", c.config.SendDefaultDailyLimit),
	)

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for send use case: %w", err)
	}
	return sendingUseCase.NewSendUseCaseWithMetrics(baseUseCase, businessMetrics), nil
}
