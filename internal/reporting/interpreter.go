package reporting

// InterpretScore returns the message key of a plain-language label for a
// score between 0 and 1.
func InterpretScore(score float64) string {
	pct := score * 100
	switch {
	case pct > 90:
		return msgExcellent
	case pct >= 70:
		return msgGood
	case pct >= 50:
		return msgNeedsWork
	default:
		return msgPoor
	}
}
