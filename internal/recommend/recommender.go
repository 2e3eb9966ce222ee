package recommend

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/oakmall/oakmall/internal/model"
	appErr "github.com/oakmall/oakmall/internal/pkg/errors"
)

// OrderSource reads every placed order from the signal store.
type OrderSource interface {
	ListAll(ctx context.Context) ([]model.Order, error)
}

// InteractionSource reads every behaviour signal from the signal store.
type InteractionSource interface {
	ListAll(ctx context.Context) ([]model.UserInteraction, error)
}

// Options tunes a recommendation engine.
type Options struct {
	// TopK is the default result count when Recommend is called with limit 0.
	TopK int
	// TrainTimeout bounds the model fit. Training is the only step whose
	// latency grows with user count and vocabulary size, so it gets its own
	// deadline. Zero means 30s.
	TrainTimeout time.Duration
	// Train is forwarded to the trainer; leave zero outside tests.
	Train TrainOptions
}

// Engine derives recommendations from raw behaviour signals. Every call
// rebuilds the whole pipeline: full-scan load, matrix, vocabulary, a freshly
// trained auto-encoder, then a ranked read-out of the target user's
// reconstructed vector. Nothing is cached or shared between calls.
type Engine struct {
	orders       OrderSource
	interactions InteractionSource
	opts         Options
}

func NewEngine(orders OrderSource, interactions InteractionSource, opts Options) *Engine {
	if opts.TopK <= 0 {
		opts.TopK = 5
	}
	if opts.TrainTimeout <= 0 {
		opts.TrainTimeout = 30 * time.Second
	}
	return &Engine{orders: orders, interactions: interactions, opts: opts}
}

// Recommend ranks catalog items for userID and returns the top limit of them
// (the engine default when limit <= 0). Items the user already engaged with
// stay in the ranking unless excludeOwned is set; including them mirrors the
// long-standing endpoint behaviour.
//
// A user without any signal gets the model's response to the all-zero vector,
// never an error, as long as some signal exists anywhere.
func (e *Engine) Recommend(ctx context.Context, userID string, limit int, excludeOwned bool) ([]model.RecommendedItem, error) {
	if limit <= 0 {
		limit = e.opts.TopK
	}

	var orders []model.Order
	var interactions []model.UserInteraction
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		orders, err = e.orders.ListAll(groupCtx)
		if err != nil {
			return fmt.Errorf("%w: orders: %v", appErr.ErrDataLoad, err)
		}
		return nil
	})
	group.Go(func() error {
		var err error
		interactions, err = e.interactions.ListAll(groupCtx)
		if err != nil {
			return fmt.Errorf("%w: interactions: %v", appErr.ErrDataLoad, err)
		}
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	matrix := BuildMatrix(orders, interactions)
	vocab := BuildVocabulary(matrix)
	if len(vocab) == 0 {
		return nil, appErr.ErrNoTrainingData
	}

	vectors := make([][]float64, 0, matrix.Len())
	for _, id := range matrix.Users() {
		vectors = append(vectors, Vectorize(matrix.ItemSet(id), vocab))
	}

	trainCtx, cancel := context.WithTimeout(ctx, e.opts.TrainTimeout)
	defer cancel()
	start := time.Now()
	network, err := Train(trainCtx, vectors, e.opts.Train)
	if err != nil {
		return nil, err
	}
	logutil.GetLogger(ctx).Info("model trained",
		zap.String("user_id", userID),
		zap.Int("users", matrix.Len()),
		zap.Int("vocab_size", len(vocab)),
		zap.Duration("elapsed", time.Since(start)),
	)

	userSet := matrix.ItemSet(userID)
	scores := network.Predict(Vectorize(userSet, vocab))

	ranked := make([]model.RecommendedItem, 0, len(vocab))
	for i, itemID := range vocab {
		if excludeOwned {
			if _, owned := userSet[itemID]; owned {
				continue
			}
		}
		ranked = append(ranked, model.RecommendedItem{ItemID: itemID, Score: scores[i]})
	}
	// Stable: ties keep vocabulary order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}
