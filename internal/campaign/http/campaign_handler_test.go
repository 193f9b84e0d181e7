package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	campaignDomain "github.com/allisson/outreach/internal/campaign/domain"
	"github.com/allisson/outreach/internal/campaign/http/dto"
	campaignUseCase "github.com/allisson/outreach/internal/campaign/usecase"
)

type mockCampaignUseCase struct {
	mock.Mock
}

func (m *mockCampaignUseCase) campaign(args mock.Arguments) (*campaignDomain.Campaign, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*campaignDomain.Campaign), args.Error(1)
}

func (m *mockCampaignUseCase) Create(
	ctx context.Context,
	input campaignUseCase.CreateInput,
) (*campaignDomain.Campaign, error) {
	return m.campaign(m.Called(ctx, input))
}

func (m *mockCampaignUseCase) Get(ctx context.Context, id string) (*campaignDomain.Campaign, error) {
	return m.campaign(m.Called(ctx, id))
}

func (m *mockCampaignUseCase) List(ctx context.Context, offset, limit int) ([]*campaignDomain.Campaign, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*campaignDomain.Campaign), args.Error(1)
}

func (m *mockCampaignUseCase) Pause(ctx context.Context, id string) (*campaignDomain.Campaign, error) {
	return m.campaign(m.Called(ctx, id))
}

func (m *mockCampaignUseCase) Resume(ctx context.Context, id string) (*campaignDomain.Campaign, error) {
	return m.campaign(m.Called(ctx, id))
}

func setupTestHandler(t *testing.T) (*CampaignHandler, *mockCampaignUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	useCase := &mockCampaignUseCase{}
	t.Cleanup(func() { useCase.AssertExpectations(t) })
	return NewCampaignHandler(useCase, slog.New(slog.NewTextHandler(io.Discard, nil))), useCase
}

func createTestContext(method, path string, body any, params ...gin.Param) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = params
	return c, w
}

func TestCampaignHandler_CreateHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, useCase := setupTestHandler(t)
		req := dto.CreateCampaignRequest{Name: "Fintech", BlacklistDomains: []string{"rival.com"}, DailyLimit: 20}
		useCase.On("Create", mock.Anything, req.ToInput()).Return(&campaignDomain.Campaign{
			ID:               "c1",
			Name:             "Fintech",
			BlacklistDomains: []string{"rival.com"},
			DailyLimit:       20,
			Status:           campaignDomain.StatusActive,
		}, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/campaigns", req)
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp dto.CampaignResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "c1", resp.ID)
		assert.Equal(t, []string{"rival.com"}, resp.BlacklistDomains)
	})

	t.Run("ValidationError", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/campaigns", dto.CreateCampaignRequest{DailyLimit: -5})
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Conflict", func(t *testing.T) {
		handler, useCase := setupTestHandler(t)
		req := dto.CreateCampaignRequest{ID: "c1", Name: "Fintech"}
		useCase.On("Create", mock.Anything, req.ToInput()).Return(nil, campaignDomain.ErrCampaignExists).Once()

		c, w := createTestContext(http.MethodPost, "/v1/campaigns", req)
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestCampaignHandler_GetHandler(t *testing.T) {
	handler, useCase := setupTestHandler(t)
	useCase.On("Get", mock.Anything, "missing").Return(nil, campaignDomain.ErrCampaignNotFound).Once()

	c, w := createTestContext(http.MethodGet, "/v1/campaigns/missing", nil, gin.Param{Key: "id", Value: "missing"})
	handler.GetHandler(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCampaignHandler_ListHandler(t *testing.T) {
	handler, useCase := setupTestHandler(t)
	useCase.On("List", mock.Anything, 10, 5).Return([]*campaignDomain.Campaign{
		{ID: "c1", Name: "A", Status: campaignDomain.StatusActive},
		{ID: "c2", Name: "B", Status: campaignDomain.StatusPaused},
	}, nil).Once()

	c, w := createTestContext(http.MethodGet, "/v1/campaigns?offset=10&limit=5", nil)
	handler.ListHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.ListCampaignsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "paused", resp.Data[1].Status)
}

func TestCampaignHandler_PauseResume(t *testing.T) {
	handler, useCase := setupTestHandler(t)
	useCase.On("Pause", mock.Anything, "c1").
		Return(&campaignDomain.Campaign{ID: "c1", Status: campaignDomain.StatusPaused}, nil).Once()
	useCase.On("Resume", mock.Anything, "c1").
		Return(&campaignDomain.Campaign{ID: "c1", Status: campaignDomain.StatusActive}, nil).Once()

	c, w := createTestContext(http.MethodPost, "/v1/campaigns/c1/pause", nil, gin.Param{Key: "id", Value: "c1"})
	handler.PauseHandler(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"paused"`)

	c, w = createTestContext(http.MethodPost, "/v1/campaigns/c1/resume", nil, gin.Param{Key: "id", Value: "c1"})
	handler.ResumeHandler(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"active"`)
}
