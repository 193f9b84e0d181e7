package usecase

import (
	"context"
	"time"

	leadDomain "github.com/allisson/outreach/internal/lead/domain"
	"github.com/allisson/outreach/internal/metrics"
	replyDomain "github.com/allisson/outreach/internal/reply/domain"
)

// replyUseCaseWithMetrics decorates ReplyUseCase with metrics instrumentation.
type replyUseCaseWithMetrics struct {
	next    ReplyUseCase
	metrics metrics.BusinessMetrics
}

// NewReplyUseCaseWithMetrics wraps a ReplyUseCase with metrics recording.
func NewReplyUseCaseWithMetrics(useCase ReplyUseCase, m metrics.BusinessMetrics) ReplyUseCase {
	return &replyUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (r *replyUseCaseWithMetrics) ApplyClassifiedReply(
	ctx context.Context,
	reply *replyDomain.Reply,
) (leadDomain.Status, error) {
	start := time.Now()
	status, err := r.next.ApplyClassifiedReply(ctx, reply)
	r.metrics.ObserveOperation(ctx, "reply", "apply_classified_reply", time.Since(start), err)
	if err == nil {
		r.metrics.RecordLeadStatus(ctx, status.String())
	}

	return status, err
}
