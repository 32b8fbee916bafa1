package llm

// charsPerToken is the average number of characters per token. Rough, but
// good enough for budgeting a prompt.
const charsPerToken = 4

// EstimateTokens returns a rough token count for a string.
func EstimateTokens(s string) int {
	if len(s) == 0 {
		return 0
	}
	return (len(s) + charsPerToken - 1) / charsPerToken // round up
}

// EstimateLinesTokens returns the estimated tokens for lines joined by
// newlines.
func EstimateLinesTokens(lines []string) int {
	total := 0
	for _, l := range lines {
		total += EstimateTokens(l) + 1 // newline
	}
	return total
}
