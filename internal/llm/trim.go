package llm

// TrimLines keeps the leading lines that fit within maxTokens and drops the
// rest. Callers order lines by priority (newest meal first), so the oldest
// entries go first. The first line is always kept.
func TrimLines(lines []string, maxTokens int) []string {
	if len(lines) == 0 || EstimateLinesTokens(lines) <= maxTokens {
		return lines
	}

	used := 0
	keep := 0
	for keep < len(lines) {
		cost := EstimateTokens(lines[keep]) + 1
		if keep > 0 && used+cost > maxTokens {
			break
		}
		used += cost
		keep++
	}
	return lines[:keep]
}
