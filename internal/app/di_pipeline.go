package app

import (
	"fmt"
	"sync"

	campaignHTTP "github.com/allisson/outreach/internal/campaign/http"
	campaignRepository "github.com/allisson/outreach/internal/campaign/repository"
	campaignUseCase "github.com/allisson/outreach/internal/campaign/usecase"
	dailymetricHTTP "github.com/allisson/outreach/internal/dailymetric/http"
	dailymetricRepository "github.com/allisson/outreach/internal/dailymetric/repository"
	dailymetricUseCase "github.com/allisson/outreach/internal/dailymetric/usecase"
	"github.com/allisson/outreach/internal/database"
	eventlogRepository "github.com/allisson/outreach/internal/eventlog/repository"
	eventlogUseCase "github.com/allisson/outreach/internal/eventlog/usecase"
	"github.com/allisson/outreach/internal/http"
	leadHTTP "github.com/allisson/outreach/internal/lead/http"
	leadRepository "github.com/allisson/outreach/internal/lead/repository"
	leadUseCase "github.com/allisson/outreach/internal/lead/usecase"
	outboxRepository "github.com/allisson/outreach/internal/outbox/repository"
	outboxUseCase "github.com/allisson/outreach/internal/outbox/usecase"
	replyHTTP "github.com/allisson/outreach/internal/reply/http"
	sendingHTTP "github.com/allisson/outreach/internal/sending/http"
)

// pipelineComponents holds the lead pipeline: storage and the non-sending use cases.
type pipelineComponents struct {
	leadRepo        leadUseCase.LeadRepository
	campaignRepo    campaignUseCase.CampaignRepository
	eventLogRepo    eventlogUseCase.EventLogRepository
	dailyMetricRepo dailymetricUseCase.DailyMetricRepository
	outboxRepo      outboxUseCase.OutboxEventRepository

	eventLogUseCase    eventlogUseCase.EventLogUseCase
	leadUseCase        leadUseCase.LeadUseCase
	campaignUseCase    campaignUseCase.CampaignUseCase
	dailyMetricUseCase dailymetricUseCase.DailyMetricUseCase

	reposInit              sync.Once
	eventLogUseCaseInit    sync.Once
	leadUseCaseInit        sync.Once
	campaignUseCaseInit    sync.Once
	dailyMetricUseCaseInit sync.Once
}

// LeadRepository returns the lead repository for the configured driver.
func (c *Container) LeadRepository() (leadUseCase.LeadRepository, error) {
	if err := c.initRepositories(); err != nil {
		return nil, err
	}
	return c.leadRepo, nil
}

// CampaignRepository returns the campaign repository for the configured driver.
func (c *Container) CampaignRepository() (campaignUseCase.CampaignRepository, error) {
	if err := c.initRepositories(); err != nil {
		return nil, err
	}
	return c.campaignRepo, nil
}

// OutboxRepository returns the outbox event repository for the configured driver.
func (c *Container) OutboxRepository() (outboxUseCase.OutboxEventRepository, error) {
	if err := c.initRepositories(); err != nil {
		return nil, err
	}
	return c.outboxRepo, nil
}

// EventLogUseCase returns the lead event log.
func (c *Container) EventLogUseCase() (eventlogUseCase.EventLogUseCase, error) {
	var err error
	c.eventLogUseCaseInit.Do(func() {
		if err = c.initRepositories(); err != nil {
			c.setInitError("eventLogUseCase", err)
			return
		}
		c.eventLogUseCase = eventlogUseCase.NewEventLogUseCase(c.eventLogRepo, c.clock)
	})
	if err != nil {
		return nil, err
	}
	return c.eventLogUseCase, c.initError("eventLogUseCase")
}

// DailyMetricUseCase returns the daily counters.
func (c *Container) DailyMetricUseCase() (dailymetricUseCase.DailyMetricUseCase, error) {
	var err error
	c.dailyMetricUseCaseInit.Do(func() {
		if err = c.initRepositories(); err != nil {
			c.setInitError("dailyMetricUseCase", err)
			return
		}
		c.dailyMetricUseCase = dailymetricUseCase.NewDailyMetricUseCase(c.dailyMetricRepo, c.clock)
	})
	if err != nil {
		return nil, err
	}
	return c.dailyMetricUseCase, c.initError("dailyMetricUseCase")
}

// CampaignUseCase returns the campaign use case.
func (c *Container) CampaignUseCase() (campaignUseCase.CampaignUseCase, error) {
	var err error
	c.campaignUseCaseInit.Do(func() {
		if err = c.initRepositories(); err != nil {
			c.setInitError("campaignUseCase", err)
			return
		}
		c.campaignUseCase = campaignUseCase.NewCampaignUseCase(c.campaignRepo, c.clock, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	return c.campaignUseCase, c.initError("campaignUseCase")
}

// LeadUseCase returns the lead pipeline use case, wrapped with metrics.
func (c *Container) LeadUseCase() (leadUseCase.LeadUseCase, error) {
	var err error
	c.leadUseCaseInit.Do(func() {
		c.leadUseCase, err = c.initLeadUseCase()
		if err != nil {
			c.setInitError("leadUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return c.leadUseCase, c.initError("leadUseCase")
}

// initRepositories creates every repository for the configured driver at once.
func (c *Container) initRepositories() error {
	var err error
	c.reposInit.Do(func() {
		err = c.buildRepositories()
		if err != nil {
			c.setInitError("repositories", err)
		}
	})
	if err != nil {
		return err
	}
	return c.initError("repositories")
}

func (c *Container) buildRepositories() error {
	db, err := c.DB()
	if err != nil {
		return fmt.Errorf("failed to get database for repositories: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL:
		c.leadRepo = leadRepository.NewMySQLLeadRepository(db)
		c.campaignRepo = campaignRepository.NewMySQLCampaignRepository(db)
		c.eventLogRepo = eventlogRepository.NewMySQLEventLogRepository(db)
		c.dailyMetricRepo = dailymetricRepository.NewMySQLDailyMetricRepository(db)
		c.outboxRepo = outboxRepository.NewMySQLOutboxEventRepository(db)
	case database.DriverPostgres:
		c.leadRepo = leadRepository.NewPostgreSQLLeadRepository(db)
		c.campaignRepo = campaignRepository.NewPostgreSQLCampaignRepository(db)
		c.eventLogRepo = eventlogRepository.NewPostgreSQLEventLogRepository(db)
		c.dailyMetricRepo = dailymetricRepository.NewPostgreSQLDailyMetricRepository(db)
		c.outboxRepo = outboxRepository.NewPostgreSQLOutboxEventRepository(db)
	default:
		return fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
	return nil
}

func (c *Container) initLeadUseCase() (leadUseCase.LeadUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for lead use case: %w", err)
	}

	leadRepo, err := c.LeadRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get lead repository for lead use case: %w", err)
	}

	eventLog, err := c.EventLogUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get event log for lead use case: %w", err)
	}

	locker, err := c.Locker()
	if err != nil {
		return nil, fmt.Errorf("failed to get locker for lead use case: %w", err)
	}

	baseUseCase := leadUseCase.NewLeadUseCase(txManager, leadRepo, eventLog, locker, c.clock, c.Logger())

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for lead use case: %w", err)
	}
	return leadUseCase.NewLeadUseCaseWithMetrics(baseUseCase, businessMetrics), nil
}

// handlers builds every API handler from the use cases.
func (c *Container) handlers() (http.Handlers, error) {
	logger := c.Logger()

	leads, err := c.LeadUseCase()
	if err != nil {
		return http.Handlers{}, err
	}
	campaigns, err := c.CampaignUseCase()
	if err != nil {
		return http.Handlers{}, err
	}
	sends, err := c.SendUseCase()
	if err != nil {
		return http.Handlers{}, err
	}
	replies, err := c.ReplyUseCase()
	if err != nil {
		return http.Handlers{}, err
	}
	dailyMetrics, err := c.DailyMetricUseCase()
	if err != nil {
		return http.Handlers{}, err
	}

	return http.Handlers{
		Lead:        leadHTTP.NewLeadHandler(leads, logger),
		Campaign:    campaignHTTP.NewCampaignHandler(campaigns, logger),
		Send:        sendingHTTP.NewSendHandler(sends, logger),
		Reply:       replyHTTP.NewReplyHandler(replies, logger),
		DailyMetric: dailymetricHTTP.NewDailyMetricHandler(dailyMetrics, logger),
	}, nil
}
