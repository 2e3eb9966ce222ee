package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/oakmall/oakmall/internal/repo"
)

// SignalStatsJob periodically logs how much training signal the store holds.
// Training cost grows with user count and vocabulary size, so the counts are
// the main thing to watch as the catalog grows.
type SignalStatsJob struct {
	orders       *repo.OrderRepo
	interactions *repo.InteractionRepo
}

func NewSignalStatsJob(orders *repo.OrderRepo, interactions *repo.InteractionRepo) *SignalStatsJob {
	return &SignalStatsJob{orders: orders, interactions: interactions}
}

func (j *SignalStatsJob) Name() string {
	return "signal_stats"
}

func (j *SignalStatsJob) Run(ctx context.Context) error {
	orderCount, err := j.orders.CountAll(ctx)
	if err != nil {
		return err
	}
	interactionCount, err := j.interactions.CountAll(ctx)
	if err != nil {
		return err
	}
	logutil.GetLogger(ctx).Info("signal store stats",
		zap.Int64("orders", orderCount),
		zap.Int64("interactions", interactionCount),
	)
	return nil
}
