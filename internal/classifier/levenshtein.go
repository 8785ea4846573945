package classifier

// levenshteinDistance computes the character-level edit distance between two
// strings with the full O(n·m) dynamic program. The MinorWording similarity
// threshold is tuned against exact distances, so no approximation is used.
func levenshteinDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = minInt(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// TextSimilarity returns 1 - editDistance/longerLength over the rune lengths
// of the two strings. Two empty strings score 1.0.
func TextSimilarity(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))

	longer := la
	if lb > longer {
		longer = lb
	}
	if longer == 0 {
		return 1.0
	}

	return 1.0 - float64(levenshteinDistance(a, b))/float64(longer)
}

func minInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
