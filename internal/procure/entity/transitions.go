package entity

// CanTransition reports whether moving between two statuses is allowed by the
// given per-entity transition table. Unknown source statuses have no valid
// targets.
func CanTransition(table map[string][]string, from, to string) bool {
	for _, s := range table[from] {
		if s == to {
			return true
		}
	}
	return false
}
