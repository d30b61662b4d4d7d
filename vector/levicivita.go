package vector

// LeviCivita returns the Levi-Civita symbol ε_ijk for 1-based indices: +1
// for an even permutation of (1,2,3), -1 for an odd one and 0 otherwise,
// including indices outside 1..3.
func LeviCivita(i, j, k int) int {
	switch [3]int{i, j, k} {
	case [3]int{1, 2, 3}, [3]int{2, 3, 1}, [3]int{3, 1, 2}:
		return 1
	case [3]int{3, 2, 1}, [3]int{1, 3, 2}, [3]int{2, 1, 3}:
		return -1
	}
	return 0
}
