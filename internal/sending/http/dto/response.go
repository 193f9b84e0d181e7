package dto

import (
	"time"

	"github.com/allisson/outreach/internal/httputil"
	sendingUseCase "github.com/allisson/outreach/internal/sending/usecase"
)

// InteractionResponse describes one delivered email.
type InteractionResponse struct {
	LeadID    string    `json:"lead_id"`
	Step      int       `json:"step"`
	SentAt    time.Time `json:"sent_at"`
	MessageID string    `json:"message_id"`
	ThreadID  string    `json:"thread_id"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Status    string    `json:"status"`
}

// MapInteractionToResponse converts a send result to an API response.
func MapInteractionToResponse(interaction *sendingUseCase.EmailInteraction) InteractionResponse {
	return InteractionResponse{
		LeadID:    interaction.LeadID,
		Step:      interaction.Step,
		SentAt:    interaction.SentAt,
		MessageID: interaction.MessageID,
		ThreadID:  interaction.ThreadID,
		Subject:   interaction.Subject,
		Body:      interaction.Body,
		Status:    interaction.Status.String(),
	}
}

// FailureResponse describes why one lead of a batch was not sent.
type FailureResponse struct {
	LeadID string `json:"lead_id"`
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

// BatchApproveResponse partitions a batch by outcome, each side in request order.
type BatchApproveResponse struct {
	Succeeded []InteractionResponse `json:"succeeded"`
	Failed    []FailureResponse     `json:"failed"`
}

// MapBatchResultToResponse converts a batch result to an API response.
func MapBatchResultToResponse(result *sendingUseCase.BatchResult) BatchApproveResponse {
	resp := BatchApproveResponse{
		Succeeded: make([]InteractionResponse, 0, len(result.Succeeded)),
		Failed:    make([]FailureResponse, 0, len(result.Failed)),
	}
	for _, interaction := range result.Succeeded {
		resp.Succeeded = append(resp.Succeeded, MapInteractionToResponse(interaction))
	}
	for _, failure := range result.Failed {
		resp.Failed = append(resp.Failed, FailureResponse{
			LeadID: failure.LeadID,
			Error:  httputil.ErrorCode(failure.Err),
			Reason: failure.Reason,
		})
	}
	return resp
}
