package commands

import (
	"context"

	"github.com/stretchr/testify/mock"

	campaignDomain "github.com/allisson/outreach/internal/campaign/domain"
	campaignUseCase "github.com/allisson/outreach/internal/campaign/usecase"
	dailymetricDomain "github.com/allisson/outreach/internal/dailymetric/domain"
	eventlogDomain "github.com/allisson/outreach/internal/eventlog/domain"
	leadDomain "github.com/allisson/outreach/internal/lead/domain"
	leadUseCase "github.com/allisson/outreach/internal/lead/usecase"
	sendingUseCase "github.com/allisson/outreach/internal/sending/usecase"
)

type mockCampaignUseCase struct {
	mock.Mock
}

func (m *mockCampaignUseCase) Create(
	ctx context.Context,
	input campaignUseCase.CreateInput,
) (*campaignDomain.Campaign, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*campaignDomain.Campaign), args.Error(1)
}

func (m *mockCampaignUseCase) Get(ctx context.Context, id string) (*campaignDomain.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*campaignDomain.Campaign), args.Error(1)
}

func (m *mockCampaignUseCase) List(ctx context.Context, offset, limit int) ([]*campaignDomain.Campaign, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*campaignDomain.Campaign), args.Error(1)
}

func (m *mockCampaignUseCase) Pause(ctx context.Context, id string) (*campaignDomain.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*campaignDomain.Campaign), args.Error(1)
}

func (m *mockCampaignUseCase) Resume(ctx context.Context, id string) (*campaignDomain.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*campaignDomain.Campaign), args.Error(1)
}

type mockSendUseCase struct {
	mock.Mock
}

func (m *mockSendUseCase) ApproveAndSend(
	ctx context.Context,
	input sendingUseCase.ApproveInput,
) (*sendingUseCase.EmailInteraction, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sendingUseCase.EmailInteraction), args.Error(1)
}

func (m *mockSendUseCase) BatchApprove(
	ctx context.Context,
	leadIDs []string,
	overrides map[string]sendingUseCase.Overrides,
) (*sendingUseCase.BatchResult, error) {
	args := m.Called(ctx, leadIDs, overrides)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sendingUseCase.BatchResult), args.Error(1)
}

type mockLeadUseCase struct {
	mock.Mock
}

func (m *mockLeadUseCase) lead(args mock.Arguments) (*leadDomain.Lead, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leadDomain.Lead), args.Error(1)
}

func (m *mockLeadUseCase) Ingest(ctx context.Context, input leadUseCase.IngestInput) (*leadDomain.Lead, error) {
	return m.lead(m.Called(ctx, input))
}

func (m *mockLeadUseCase) RecordEnrichment(
	ctx context.Context,
	id, companySummary, productSummary string,
) (*leadDomain.Lead, error) {
	return m.lead(m.Called(ctx, id, companySummary, productSummary))
}

func (m *mockLeadUseCase) RecordDraft(ctx context.Context, id, subject, body string) (*leadDomain.Lead, error) {
	return m.lead(m.Called(ctx, id, subject, body))
}

func (m *mockLeadUseCase) Stop(ctx context.Context, id string) (*leadDomain.Lead, error) {
	return m.lead(m.Called(ctx, id))
}

func (m *mockLeadUseCase) Get(ctx context.Context, id string) (*leadDomain.Lead, error) {
	return m.lead(m.Called(ctx, id))
}

func (m *mockLeadUseCase) List(
	ctx context.Context,
	status *leadDomain.Status,
	offset, limit int,
) ([]*leadDomain.Lead, error) {
	args := m.Called(ctx, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*leadDomain.Lead), args.Error(1)
}

func (m *mockLeadUseCase) Logs(
	ctx context.Context,
	id string,
	offset, limit int,
) ([]*eventlogDomain.Entry, error) {
	args := m.Called(ctx, id, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*eventlogDomain.Entry), args.Error(1)
}

type mockDailyMetricUseCase struct {
	mock.Mock
}

func (m *mockDailyMetricUseCase) Increment(ctx context.Context, counter dailymetricDomain.Counter) error {
	return m.Called(ctx, counter).Error(0)
}

func (m *mockDailyMetricUseCase) Today(ctx context.Context) (*dailymetricDomain.DailyMetric, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dailymetricDomain.DailyMetric), args.Error(1)
}

func (m *mockDailyMetricUseCase) Get(ctx context.Context, date string) (*dailymetricDomain.DailyMetric, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dailymetricDomain.DailyMetric), args.Error(1)
}
