package recommend

// BuildVocabulary flattens all users' item sets into one de-duplicated ordered
// sequence. Order is first occurrence across the matrix's user insertion
// order, then item insertion order within each user; that order defines the
// positional meaning of every vector coordinate and must stay fixed for one
// training plus inference cycle.
func BuildVocabulary(m *Matrix) []string {
	seen := make(map[string]struct{})
	var vocab []string
	for _, userID := range m.Users() {
		for _, itemID := range m.itemOrder[userID] {
			if _, ok := seen[itemID]; ok {
				continue
			}
			seen[itemID] = struct{}{}
			vocab = append(vocab, itemID)
		}
	}
	return vocab
}

// Vectorize converts an item set into a binary presence vector over vocab.
// Coordinate i is 1 iff vocab[i] is in the set. A nil or empty set yields the
// all-zero vector.
func Vectorize(itemSet map[string]struct{}, vocab []string) []float64 {
	vector := make([]float64, len(vocab))
	if len(itemSet) == 0 {
		return vector
	}
	for i, itemID := range vocab {
		if _, ok := itemSet[itemID]; ok {
			vector[i] = 1
		}
	}
	return vector
}
