package domain

// Preferences are process-wide display flags.
type Preferences struct {
	WeekStartsOnMonday  bool `json:"weekStartsOnMonday" yaml:"weekStartsOnMonday"`
	HighlightCurrentDay bool `json:"highlightCurrentDay" yaml:"highlightCurrentDay"`
	ShowAnalytics       bool `json:"showAnalytics" yaml:"showAnalytics"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		WeekStartsOnMonday:  false,
		HighlightCurrentDay: true,
		ShowAnalytics:       true,
	}
}

const (
	PrefWeekStartsOnMonday  = "week-starts-on-monday"
	PrefHighlightCurrentDay = "highlight-current-day"
	PrefShowAnalytics       = "show-analytics"
)

// Toggle flips the named flag and reports whether the name is known.
func (p *Preferences) Toggle(name string) bool {
	switch name {
	case PrefWeekStartsOnMonday:
		p.WeekStartsOnMonday = !p.WeekStartsOnMonday
	case PrefHighlightCurrentDay:
		p.HighlightCurrentDay = !p.HighlightCurrentDay
	case PrefShowAnalytics:
		p.ShowAnalytics = !p.ShowAnalytics
	default:
		return false
	}
	return true
}
