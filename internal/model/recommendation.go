package model

// RecommendedItem pairs a catalog item with the affinity score predicted for
// the target user. Slices of these are always ordered by descending score.
type RecommendedItem struct {
	ItemID string  `json:"item_id"`
	Score  float64 `json:"score"`
}
