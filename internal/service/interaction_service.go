package service

import (
	"context"
	"time"

	"github.com/oakmall/oakmall/internal/model"
	appErr "github.com/oakmall/oakmall/internal/pkg/errors"
)

type interactionStore interface {
	Create(ctx context.Context, inter *model.UserInteraction) error
}

type InteractionService struct {
	interactions interactionStore
}

func NewInteractionService(interactions interactionStore) *InteractionService {
	return &InteractionService{interactions: interactions}
}

// Record stores one (user, product, action) presence signal. Recording the
// same combination again is a no-op success: storage keeps one row per
// combination and the pipeline never counts repeats.
func (s *InteractionService) Record(ctx context.Context, userID, productID, action string) (*model.UserInteraction, error) {
	if productID == "" || !model.IsValidAction(action) {
		return nil, appErr.ErrInvalid
	}
	inter := &model.UserInteraction{
		ID:        newID(),
		UserID:    userID,
		ProductID: productID,
		Action:    action,
		Ctime:     time.Now().Unix(),
	}
	if err := s.interactions.Create(ctx, inter); err != nil {
		if appErr.IsConflict(err) {
			return inter, nil
		}
		return nil, err
	}
	return inter, nil
}
