package recommend

import (
	"reflect"
	"testing"

	"github.com/oakmall/oakmall/internal/model"
)

func specMatrix() *Matrix {
	orders := []model.Order{
		{UserID: "u1", Items: []model.OrderItem{{ProductID: "p1"}, {ProductID: "p2"}}},
	}
	interactions := []model.UserInteraction{
		{UserID: "u2", ProductID: "p3", Action: model.ActionView},
	}
	return BuildMatrix(orders, interactions)
}

func TestBuildVocabularyFirstSeenOrder(t *testing.T) {
	vocab := BuildVocabulary(specMatrix())
	want := []string{"p1", "p2", "p3"}
	if !reflect.DeepEqual(vocab, want) {
		t.Fatalf("vocabulary = %v, want %v", vocab, want)
	}
}

func TestBuildVocabularyCoverage(t *testing.T) {
	orders := []model.Order{
		{UserID: "u1", Items: []model.OrderItem{{ProductID: "p1"}, {ProductID: "p2"}}},
		{UserID: "u2", Items: []model.OrderItem{{ProductID: "p2"}, {ProductID: "p3"}}},
	}
	interactions := []model.UserInteraction{
		{UserID: "u3", ProductID: "p1", Action: model.ActionLike},
		{UserID: "u3", ProductID: "p4", Action: model.ActionView},
	}
	m := BuildMatrix(orders, interactions)
	vocab := BuildVocabulary(m)

	union := make(map[string]struct{})
	for _, userID := range m.Users() {
		for itemID := range m.ItemSet(userID) {
			union[itemID] = struct{}{}
		}
	}
	if len(vocab) != len(union) {
		t.Fatalf("|vocabulary| = %d, want |union| = %d", len(vocab), len(union))
	}
	seen := make(map[string]int)
	for _, itemID := range vocab {
		seen[itemID]++
	}
	for itemID, count := range seen {
		if count != 1 {
			t.Errorf("item %q appears %d times in vocabulary", itemID, count)
		}
		if _, ok := union[itemID]; !ok {
			t.Errorf("item %q in vocabulary but in no user's set", itemID)
		}
	}
}

func TestBuildVocabularyEmptyMatrix(t *testing.T) {
	if vocab := BuildVocabulary(BuildMatrix(nil, nil)); len(vocab) != 0 {
		t.Fatalf("vocabulary over empty matrix = %v, want empty", vocab)
	}
}

func TestVectorize(t *testing.T) {
	m := specMatrix()
	vocab := BuildVocabulary(m)

	tests := []struct {
		user string
		want []float64
	}{
		{user: "u1", want: []float64{1, 1, 0}},
		{user: "u2", want: []float64{0, 0, 1}},
		{user: "u3", want: []float64{0, 0, 0}}, // absent user: all-zero vector
	}
	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			got := Vectorize(m.ItemSet(tt.user), vocab)
			if len(got) != len(vocab) {
				t.Fatalf("vector length = %d, want %d", len(got), len(vocab))
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Vectorize(%q) = %v, want %v", tt.user, got, tt.want)
			}
		})
	}
}
