package recommend

import (
	"github.com/oakmall/oakmall/internal/model"
)

// Matrix maps each user to the distinct set of items the user has engaged
// with, via order or interaction. It additionally records the insertion order
// of users and of items within each user, so that the vocabulary derived from
// it has a reproducible first-seen order instead of depending on map
// enumeration.
type Matrix struct {
	userOrder []string
	sets      map[string]map[string]struct{}
	itemOrder map[string][]string
}

// BuildMatrix folds orders and interactions into a per-user item set. It is a
// pure set union: no action filtering, no counting, no recency weighting. A
// user with no signal at all is simply absent.
func BuildMatrix(orders []model.Order, interactions []model.UserInteraction) *Matrix {
	m := &Matrix{
		sets:      make(map[string]map[string]struct{}),
		itemOrder: make(map[string][]string),
	}
	for _, order := range orders {
		for _, item := range order.Items {
			m.add(order.UserID, item.ProductID)
		}
	}
	for _, inter := range interactions {
		m.add(inter.UserID, inter.ProductID)
	}
	return m
}

func (m *Matrix) add(userID, itemID string) {
	if userID == "" || itemID == "" {
		return
	}
	set, ok := m.sets[userID]
	if !ok {
		set = make(map[string]struct{})
		m.sets[userID] = set
		m.userOrder = append(m.userOrder, userID)
	}
	if _, ok := set[itemID]; !ok {
		set[itemID] = struct{}{}
		m.itemOrder[userID] = append(m.itemOrder[userID], itemID)
	}
}

// Users returns user ids in first-seen order.
func (m *Matrix) Users() []string {
	return m.userOrder
}

// ItemSet returns the item set for userID, nil if the user is absent.
func (m *Matrix) ItemSet(userID string) map[string]struct{} {
	return m.sets[userID]
}

// Len is the number of users with at least one signal.
func (m *Matrix) Len() int {
	return len(m.userOrder)
}
