package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oakmall/oakmall/internal/model"
	appErr "github.com/oakmall/oakmall/internal/pkg/errors"
)

type fakeOrderSource struct {
	orders []model.Order
	err    error
}

func (f *fakeOrderSource) ListAll(ctx context.Context) ([]model.Order, error) {
	return f.orders, f.err
}

type fakeInteractionSource struct {
	interactions []model.UserInteraction
	err          error
}

func (f *fakeInteractionSource) ListAll(ctx context.Context) ([]model.UserInteraction, error) {
	return f.interactions, f.err
}

func newTestEngine(orders []model.Order, interactions []model.UserInteraction) *Engine {
	return NewEngine(
		&fakeOrderSource{orders: orders},
		&fakeInteractionSource{interactions: interactions},
		Options{Train: TrainOptions{Seed: 42}},
	)
}

func specSignals() ([]model.Order, []model.UserInteraction) {
	orders := []model.Order{
		{UserID: "u1", Items: []model.OrderItem{{ProductID: "p1"}, {ProductID: "p2"}}},
	}
	interactions := []model.UserInteraction{
		{UserID: "u2", ProductID: "p3", Action: model.ActionView},
	}
	return orders, interactions
}

func TestRecommendEmptySignalStore(t *testing.T) {
	engine := newTestEngine(nil, nil)
	_, err := engine.Recommend(context.Background(), "u1", 5, false)
	require.ErrorIs(t, err, appErr.ErrNoTrainingData)
}

func TestRecommendDataLoadFailure(t *testing.T) {
	engine := NewEngine(
		&fakeOrderSource{err: errors.New("connection refused")},
		&fakeInteractionSource{},
		Options{},
	)
	_, err := engine.Recommend(context.Background(), "u1", 5, false)
	require.ErrorIs(t, err, appErr.ErrDataLoad)
}

func TestRecommendTopKBound(t *testing.T) {
	orders, interactions := specSignals()
	engine := newTestEngine(orders, interactions)

	// Vocabulary holds 3 items; asking for 5 returns all 3, never padding.
	items, err := engine.Recommend(context.Background(), "u1", 5, false)
	require.NoError(t, err)
	require.Len(t, items, 3)

	seen := make(map[string]struct{})
	for i, item := range items {
		require.NotContains(t, seen, item.ItemID)
		seen[item.ItemID] = struct{}{}
		if i > 0 {
			require.GreaterOrEqual(t, items[i-1].Score, item.Score)
		}
	}

	items, err = engine.Recommend(context.Background(), "u1", 2, false)
	require.NoError(t, err)
	require.Len(t, items, 2)
}

func TestRecommendUnknownUser(t *testing.T) {
	orders, interactions := specSignals()
	engine := newTestEngine(orders, interactions)

	// u3 never interacted: scored from the all-zero vector, never an error.
	items, err := engine.Recommend(context.Background(), "u3", 5, false)
	require.NoError(t, err)
	require.NotEmpty(t, items)
	require.LessOrEqual(t, len(items), 3)
}

func TestRecommendIncludesOwnedByDefault(t *testing.T) {
	orders, interactions := specSignals()
	engine := newTestEngine(orders, interactions)

	items, err := engine.Recommend(context.Background(), "u1", 5, false)
	require.NoError(t, err)
	ids := make(map[string]struct{})
	for _, item := range items {
		ids[item.ItemID] = struct{}{}
	}
	// u1 bought p1 and p2; the default ranking keeps them.
	require.Contains(t, ids, "p1")
	require.Contains(t, ids, "p2")
}

func TestRecommendExcludeOwned(t *testing.T) {
	orders, interactions := specSignals()
	engine := newTestEngine(orders, interactions)

	items, err := engine.Recommend(context.Background(), "u1", 5, true)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "p3", items[0].ItemID)
}

func TestRecommendDefaultLimit(t *testing.T) {
	orders := []model.Order{
		{UserID: "u1", Items: []model.OrderItem{
			{ProductID: "p1"}, {ProductID: "p2"}, {ProductID: "p3"},
			{ProductID: "p4"}, {ProductID: "p5"}, {ProductID: "p6"}, {ProductID: "p7"},
		}},
	}
	engine := newTestEngine(orders, nil)
	items, err := engine.Recommend(context.Background(), "u1", 0, false)
	require.NoError(t, err)
	require.Len(t, items, 5)
}
