package service

import (
	"context"
	"time"

	"github.com/oakmall/oakmall/internal/config"
	"github.com/oakmall/oakmall/internal/model"
	"github.com/oakmall/oakmall/internal/recommend"
)

type RecommendationService struct {
	engine       *recommend.Engine
	excludeOwned bool
}

func NewRecommendationService(orders recommend.OrderSource, interactions recommend.InteractionSource, cfg config.RecommendConfig) *RecommendationService {
	engine := recommend.NewEngine(orders, interactions, recommend.Options{
		TopK:         cfg.TopK,
		TrainTimeout: time.Duration(cfg.TrainTimeoutSec) * time.Second,
	})
	return &RecommendationService{
		engine:       engine,
		excludeOwned: cfg.ExcludeOwned,
	}
}

// ExcludeOwnedDefault is the configured default for the exclude_owned query
// parameter.
func (s *RecommendationService) ExcludeOwnedDefault() bool {
	return s.excludeOwned
}

// Recommend runs the full pipeline for userID: load signals, rebuild the
// matrix and vocabulary, train a fresh model, rank. limit <= 0 means the
// configured top-k.
func (s *RecommendationService) Recommend(ctx context.Context, userID string, limit int, excludeOwned bool) ([]model.RecommendedItem, error) {
	return s.engine.Recommend(ctx, userID, limit, excludeOwned)
}
