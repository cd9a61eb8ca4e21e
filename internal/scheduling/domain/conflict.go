package domain

import (
	"fmt"
	"time"
)

// FindConflicts returns every meeting that blocks time and overlaps the
// candidate once it is widened by buffer on both sides. Input order is kept.
func FindConflicts(candidate TimeRange, buffer time.Duration, meetings []Meeting) []Meeting {
	expanded := candidate.Expand(buffer)

	var conflicts []Meeting
	for _, m := range meetings {
		if !m.BlocksTime() {
			continue
		}
		if m.DateRange().Overlaps(expanded) {
			conflicts = append(conflicts, m)
		}
	}
	return conflicts
}

// ConflictNote describes a conflicting meeting for display.
func ConflictNote(m Meeting, loc *time.Location) string {
	r := m.DateRange().In(loc)
	title := m.Title()
	if title == "" {
		title = "Untitled meeting"
	}
	return fmt.Sprintf("Overlaps %q (%s-%s)", title, r.Start().Format("15:04"), r.End().Format("15:04"))
}
