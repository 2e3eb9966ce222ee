package model

const (
	ActionView      = "view"
	ActionLike      = "like"
	ActionAddToCart = "add_to_cart"
)

// UserInteraction is a recorded (user, product, action) behaviour signal.
// Storage keeps at most one row per (user, product, action) combination; the
// pipeline only cares about presence, never frequency.
type UserInteraction struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
	Action    string `json:"action"`
	Ctime     int64  `json:"ctime"`
}

// IsValidAction reports whether action is one of the recognised interaction kinds.
func IsValidAction(action string) bool {
	switch action {
	case ActionView, ActionLike, ActionAddToCart:
		return true
	}
	return false
}
