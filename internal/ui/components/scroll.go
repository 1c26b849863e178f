package components

// Window returns the lines visible in a viewport of the given height starting
// at *offset. The offset is clamped so the last page stays full.
func Window(lines []string, offset *int, height int) []string {
	if height <= 0 {
		return nil
	}
	maxOffset := len(lines) - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if *offset > maxOffset {
		*offset = maxOffset
	}
	if *offset < 0 {
		*offset = 0
	}
	end := *offset + height
	if end > len(lines) {
		end = len(lines)
	}
	return lines[*offset:end]
}

// Follow adjusts offset so that row cursor is inside a viewport of height.
func Follow(cursor, offset, height int) int {
	if height <= 0 {
		return offset
	}
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+height {
		return cursor - height + 1
	}
	return offset
}
