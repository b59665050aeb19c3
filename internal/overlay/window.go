package overlay

// ListWindow picks the slice [start, end) of a list of total entries to show
// in lines rows, keeping current near the middle. A "..." row is drawn for
// each side with hidden entries, so the window shrinks until entries plus
// markers fit. With no room at all it returns an empty window.
func ListWindow(current, total, lines int) (start, end int) {
	if lines <= 0 || total <= 0 {
		return 0, 0
	}
	if total <= lines {
		return 0, total
	}

	for visible := lines; visible > 0; visible-- {
		start = max(0, current-visible/2)
		end = min(total, start+visible)
		start = max(0, end-visible)

		markers := 0
		if start > 0 {
			markers++
		}
		if end < total {
			markers++
		}
		if visible+markers <= lines {
			return start, end
		}
	}
	return 0, 0
}

// listMarkers reports which "..." rows go around the window [start, end). An
// empty window gets none, since there was no room for any row.
func listMarkers(start, end, total int) (above, below bool) {
	if end <= start {
		return false, false
	}
	return start > 0, end < total
}
