package domain

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// Document is the persisted form of the whole habit collection plus
// preferences, stored as one JSON blob.
type Document struct {
	Habits              []*Habit `json:"habits"`
	WeekStartsOnMonday  bool     `json:"weekStartsOnMonday"`
	HighlightCurrentDay bool     `json:"highlightCurrentDay"`
	ShowAnalytics       bool     `json:"showAnalytics"`
}

// storedDocument mirrors Document with optional flags so fields missing from
// older blobs fall back to their defaults instead of false.
type storedDocument struct {
	Habits              []json.RawMessage `json:"habits"`
	WeekStartsOnMonday  *bool             `json:"weekStartsOnMonday"`
	HighlightCurrentDay *bool             `json:"highlightCurrentDay"`
	ShowAnalytics       *bool             `json:"showAnalytics"`
}

func EncodeDocument(habits *HabitCollection, prefs Preferences) ([]byte, error) {
	doc := Document{
		Habits:              habits.All(),
		WeekStartsOnMonday:  prefs.WeekStartsOnMonday,
		HighlightCurrentDay: prefs.HighlightCurrentDay,
		ShowAnalytics:       prefs.ShowAnalytics,
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: encode document: %v", ErrPersistence, err)
	}
	return data, nil
}

// DecodeDocument parses a persisted blob. A blob that is not a JSON document
// fails with ErrMalformedData. Individual habit records that do not decode
// or break an invariant are dropped; the number dropped is returned.
func DecodeDocument(data []byte) (*HabitCollection, Preferences, int, error) {
	prefs := DefaultPreferences()

	var stored storedDocument
	if err := json.Unmarshal(data, &stored); err != nil {
		return NewHabitCollection(), prefs, 0, fmt.Errorf("%w: %v", ErrMalformedData, err)
	}

	if stored.WeekStartsOnMonday != nil {
		prefs.WeekStartsOnMonday = *stored.WeekStartsOnMonday
	}
	if stored.HighlightCurrentDay != nil {
		prefs.HighlightCurrentDay = *stored.HighlightCurrentDay
	}
	if stored.ShowAnalytics != nil {
		prefs.ShowAnalytics = *stored.ShowAnalytics
	}

	habits := NewHabitCollection()
	dropped := 0
	for i, raw := range stored.Habits {
		h, err := decodeHabit(raw)
		if err == nil {
			err = habits.Add(h)
		}
		if err != nil {
			log.Printf("[DOCUMENT] Dropping habit record %d: %v", i, err)
			dropped++
		}
	}

	return habits, prefs, dropped, nil
}

func decodeHabit(raw json.RawMessage) (*Habit, error) {
	var h Habit
	if err := json.Unmarshal(raw, &h); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedData, err)
	}

	h.ID = strings.TrimSpace(h.ID)
	if h.ID == "" {
		return nil, ErrMissingID
	}

	h.repairProgress()

	// Records written before a field existed load with its default.
	if h.Icon == "" {
		h.Icon = DefaultIcon
	}
	if h.CompletionTracking == "" {
		h.CompletionTracking = TrackingStepByStep
	}
	if h.StreakGoal == "" {
		h.StreakGoal = StreakGoalNone
	}
	if h.CompletionsPerDay < 1 {
		h.CompletionsPerDay = 1
	}
	if h.Reminders < 0 {
		h.Reminders = 0
	}
	h.Categories = normalizeCategories(h.Categories)
	if h.TargetCompletionDate != nil && !h.TargetCompletionDate.Valid() {
		h.TargetCompletionDate = nil
	}

	return &h, nil
}

// repairProgress enforces per-day uniqueness. Entries with an unparseable
// date are discarded; for a repeated day the first entry wins.
func (h *Habit) repairProgress() {
	if h.Progress == nil {
		h.Progress = []DayProgress{}
		return
	}

	seen := make(map[CalendarDay]bool, len(h.Progress))
	kept := h.Progress[:0]
	for _, p := range h.Progress {
		if !p.Date.Valid() {
			log.Printf("[DOCUMENT] Habit %s: discarding progress with invalid date %q", h.ID, p.Date)
			continue
		}
		if seen[p.Date] {
			log.Printf("[DOCUMENT] Habit %s: %v %s", h.ID, ErrDuplicateProgressDate, p.Date)
			continue
		}
		seen[p.Date] = true
		kept = append(kept, p)
	}
	h.Progress = kept
}
