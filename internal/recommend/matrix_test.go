package recommend

import (
	"reflect"
	"testing"

	"github.com/oakmall/oakmall/internal/model"
)

func setOf(items ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

func TestBuildMatrix(t *testing.T) {
	tests := []struct {
		name         string
		orders       []model.Order
		interactions []model.UserInteraction
		want         map[string]map[string]struct{}
	}{
		{
			name: "empty inputs",
			want: map[string]map[string]struct{}{},
		},
		{
			name: "orders only",
			orders: []model.Order{
				{UserID: "u1", Items: []model.OrderItem{{ProductID: "p1"}, {ProductID: "p2"}}},
			},
			want: map[string]map[string]struct{}{
				"u1": setOf("p1", "p2"),
			},
		},
		{
			name: "order and interaction union for one user",
			orders: []model.Order{
				{UserID: "u1", Items: []model.OrderItem{{ProductID: "p1"}}},
			},
			interactions: []model.UserInteraction{
				{UserID: "u1", ProductID: "p2", Action: model.ActionView},
				{UserID: "u1", ProductID: "p1", Action: model.ActionLike},
			},
			want: map[string]map[string]struct{}{
				"u1": setOf("p1", "p2"),
			},
		},
		{
			name: "duplicate line items collapse to presence",
			orders: []model.Order{
				{UserID: "u1", Items: []model.OrderItem{{ProductID: "p1"}, {ProductID: "p1"}}},
				{UserID: "u1", Items: []model.OrderItem{{ProductID: "p1"}}},
			},
			want: map[string]map[string]struct{}{
				"u1": setOf("p1"),
			},
		},
		{
			name: "spec scenario",
			orders: []model.Order{
				{UserID: "u1", Items: []model.OrderItem{{ProductID: "p1"}, {ProductID: "p2"}}},
			},
			interactions: []model.UserInteraction{
				{UserID: "u2", ProductID: "p3", Action: model.ActionView},
			},
			want: map[string]map[string]struct{}{
				"u1": setOf("p1", "p2"),
				"u2": setOf("p3"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := BuildMatrix(tt.orders, tt.interactions)
			if m.Len() != len(tt.want) {
				t.Fatalf("Len() = %d, want %d", m.Len(), len(tt.want))
			}
			for userID, wantSet := range tt.want {
				if got := m.ItemSet(userID); !reflect.DeepEqual(got, wantSet) {
					t.Errorf("ItemSet(%q) = %v, want %v", userID, got, wantSet)
				}
			}
		})
	}
}

func TestBuildMatrixInputOrderIndependent(t *testing.T) {
	orders := []model.Order{
		{UserID: "u1", Items: []model.OrderItem{{ProductID: "p1"}}},
		{UserID: "u2", Items: []model.OrderItem{{ProductID: "p2"}, {ProductID: "p3"}}},
	}
	interactions := []model.UserInteraction{
		{UserID: "u1", ProductID: "p3", Action: model.ActionAddToCart},
		{UserID: "u3", ProductID: "p1", Action: model.ActionView},
	}
	reversedOrders := []model.Order{orders[1], orders[0]}
	reversedInteractions := []model.UserInteraction{interactions[1], interactions[0]}

	forward := BuildMatrix(orders, interactions)
	backward := BuildMatrix(reversedOrders, reversedInteractions)

	if forward.Len() != backward.Len() {
		t.Fatalf("user counts differ: %d vs %d", forward.Len(), backward.Len())
	}
	for _, userID := range forward.Users() {
		if !reflect.DeepEqual(forward.ItemSet(userID), backward.ItemSet(userID)) {
			t.Errorf("sets for %q differ under input reordering", userID)
		}
	}
}

func TestMatrixAbsentUser(t *testing.T) {
	m := BuildMatrix(nil, []model.UserInteraction{{UserID: "u1", ProductID: "p1", Action: model.ActionView}})
	if set := m.ItemSet("ghost"); set != nil {
		t.Fatalf("ItemSet for absent user = %v, want nil", set)
	}
	for _, userID := range m.Users() {
		if userID == "ghost" {
			t.Fatal("absent user must not appear in Users()")
		}
	}
}
