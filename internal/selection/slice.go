package selection

// sliceSelection returns text[start:end] with end clamped to the text. An
// out-of-range start or an empty range gives nil.
func sliceSelection(text []uint16, start, end int) []uint16 {
	if start < 0 || end < 0 {
		return nil
	}
	if end > len(text) {
		end = len(text)
	}
	if start >= len(text) || end <= start {
		return nil
	}
	return text[start:end]
}
