package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitNameEmpty        = fmt.Errorf("%w: habit name cannot be empty", ErrValidation)
	ErrHabitNameTooLong      = fmt.Errorf("%w: habit name is too long (max 100 chars)", ErrValidation)
	ErrHabitSubtitleTooLong  = fmt.Errorf("%w: habit subtitle is too long (max 500 chars)", ErrValidation)
	ErrInvalidColor          = fmt.Errorf("%w: invalid color format (must be #RRGGBB)", ErrValidation)
	ErrInvalidTracking       = fmt.Errorf("%w: invalid completion tracking (must be step_by_step or custom_value)", ErrValidation)
	ErrInvalidStreakGoal     = fmt.Errorf("%w: invalid streak goal (must be none, daily, weekly or monthly)", ErrValidation)
	ErrInvalidCompletions    = fmt.Errorf("%w: completions per day must be at least 1", ErrValidation)
	ErrInvalidReminders      = fmt.Errorf("%w: reminders cannot be negative", ErrValidation)
	ErrInvalidTargetDate     = fmt.Errorf("%w: invalid target completion date", ErrValidation)
	ErrHabitArchived         = fmt.Errorf("%w: cannot edit an archived habit", ErrValidation)
	ErrDuplicateProgressDate = fmt.Errorf("%w: duplicate progress date", ErrMalformedData)
)

var colorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

const (
	TrackingStepByStep = "step_by_step"
	TrackingCustom     = "custom_value"
	StreakGoalNone     = "none"
	StreakGoalDaily    = "daily"
	StreakGoalWeekly   = "weekly"
	StreakGoalMonthly  = "monthly"
	DefaultIcon        = "default_icon"
	MaxNameLen         = 100
	MaxSubtitleLen     = 500
)

// DayProgress is the completion record of one habit on one day.
type DayProgress struct {
	Date      CalendarDay `json:"date"`
	Completed bool        `json:"completed"`
}

type Habit struct {
	ID                   string        `json:"id"`
	Name                 string        `json:"name"`
	Subtitle             string        `json:"subtitle"`
	Color                string        `json:"color"`
	Icon                 string        `json:"icon"`
	StreakGoal           string        `json:"streakGoal"`
	Reminders            int           `json:"reminders"`
	Categories           []string      `json:"categories"`
	CompletionTracking   string        `json:"completionTracking"`
	CompletionsPerDay    int           `json:"completionsPerDay"`
	Progress             []DayProgress `json:"progress"`
	TargetCompletionDate *CalendarDay  `json:"targetCompletionDate,omitempty"`
	ArchivedAt           *time.Time    `json:"archivedAt,omitempty"`
	CreatedAt            time.Time     `json:"createdAt"`
	UpdatedAt            time.Time     `json:"updatedAt"`
}

// HabitAttributes are the user-editable fields of a habit.
type HabitAttributes struct {
	Name                 string
	Subtitle             string
	Color                string
	Icon                 string
	StreakGoal           string
	Reminders            int
	Categories           []string
	CompletionTracking   string
	CompletionsPerDay    int
	TargetCompletionDate *CalendarDay
}

// HabitPatch carries a partial edit. Nil fields keep their current value.
type HabitPatch struct {
	Name                 *string
	Subtitle             *string
	Color                *string
	Icon                 *string
	StreakGoal           *string
	Reminders            *int
	Categories           []string
	CompletionTracking   *string
	CompletionsPerDay    *int
	TargetCompletionDate *CalendarDay
	ClearTargetDate      bool
}

func normalizeCategories(categories []string) []string {
	if len(categories) == 0 {
		return []string{}
	}

	seen := make(map[string]bool)
	unique := make([]string, 0, len(categories))
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		unique = append(unique, c)
	}

	sort.Strings(unique)
	return unique
}

func validateAndNormalize(a HabitAttributes) (HabitAttributes, error) {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return a, ErrHabitNameEmpty
	}
	if len([]rune(a.Name)) > MaxNameLen {
		return a, ErrHabitNameTooLong
	}

	a.Subtitle = strings.TrimSpace(a.Subtitle)
	if len([]rune(a.Subtitle)) > MaxSubtitleLen {
		return a, ErrHabitSubtitleTooLong
	}

	if a.Color != "" && !colorRegex.MatchString(a.Color) {
		return a, ErrInvalidColor
	}

	if a.Icon == "" {
		a.Icon = DefaultIcon
	}

	switch a.CompletionTracking {
	case "":
		a.CompletionTracking = TrackingStepByStep
	case TrackingStepByStep, TrackingCustom:
	default:
		return a, ErrInvalidTracking
	}

	switch a.StreakGoal {
	case "":
		a.StreakGoal = StreakGoalNone
	case StreakGoalNone, StreakGoalDaily, StreakGoalWeekly, StreakGoalMonthly:
	default:
		return a, ErrInvalidStreakGoal
	}

	if a.CompletionsPerDay < 0 {
		return a, ErrInvalidCompletions
	}
	if a.CompletionsPerDay == 0 {
		a.CompletionsPerDay = 1
	}

	if a.Reminders < 0 {
		return a, ErrInvalidReminders
	}

	if a.TargetCompletionDate != nil && !a.TargetCompletionDate.Valid() {
		return a, ErrInvalidTargetDate
	}

	a.Categories = normalizeCategories(a.Categories)

	return a, nil
}

// NewHabit validates attrs and returns a habit with a fresh id and an empty
// progress record.
func NewHabit(attrs HabitAttributes, now time.Time) (*Habit, error) {
	clean, err := validateAndNormalize(attrs)
	if err != nil {
		return nil, err
	}

	h := &Habit{
		ID:        uuid.New().String(),
		Progress:  []DayProgress{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	h.assign(clean)
	return h, nil
}

func (h *Habit) assign(a HabitAttributes) {
	h.Name = a.Name
	h.Subtitle = a.Subtitle
	h.Color = a.Color
	h.Icon = a.Icon
	h.StreakGoal = a.StreakGoal
	h.Reminders = a.Reminders
	h.Categories = a.Categories
	h.CompletionTracking = a.CompletionTracking
	h.CompletionsPerDay = a.CompletionsPerDay
	h.TargetCompletionDate = a.TargetCompletionDate
}

func (h *Habit) Attributes() HabitAttributes {
	return HabitAttributes{
		Name:                 h.Name,
		Subtitle:             h.Subtitle,
		Color:                h.Color,
		Icon:                 h.Icon,
		StreakGoal:           h.StreakGoal,
		Reminders:            h.Reminders,
		Categories:           append([]string(nil), h.Categories...),
		CompletionTracking:   h.CompletionTracking,
		CompletionsPerDay:    h.CompletionsPerDay,
		TargetCompletionDate: h.TargetCompletionDate,
	}
}

// Apply merges the provided fields of p. The habit is left untouched when
// the merged result does not validate. ID and Progress never change.
func (h *Habit) Apply(p HabitPatch, now time.Time) error {
	if h.IsArchived() {
		return ErrHabitArchived
	}

	a := h.Attributes()
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Subtitle != nil {
		a.Subtitle = *p.Subtitle
	}
	if p.Color != nil {
		a.Color = *p.Color
	}
	if p.Icon != nil {
		a.Icon = *p.Icon
	}
	if p.StreakGoal != nil {
		a.StreakGoal = *p.StreakGoal
	}
	if p.Reminders != nil {
		a.Reminders = *p.Reminders
	}
	if p.Categories != nil {
		a.Categories = p.Categories
	}
	if p.CompletionTracking != nil {
		a.CompletionTracking = *p.CompletionTracking
	}
	if p.CompletionsPerDay != nil {
		a.CompletionsPerDay = *p.CompletionsPerDay
		if a.CompletionsPerDay < 1 {
			return ErrInvalidCompletions
		}
	}
	if p.ClearTargetDate {
		a.TargetCompletionDate = nil
	} else if p.TargetCompletionDate != nil {
		day := *p.TargetCompletionDate
		a.TargetCompletionDate = &day
	}

	clean, err := validateAndNormalize(a)
	if err != nil {
		return err
	}

	h.assign(clean)
	h.UpdatedAt = now
	return nil
}

func (h *Habit) progressIndex(day CalendarDay) int {
	for i, p := range h.Progress {
		if p.Date == day {
			return i
		}
	}
	return -1
}

// Toggle flips the completion of day, inserting a completed entry when the
// day has never been tracked.
func (h *Habit) Toggle(day CalendarDay, now time.Time) DayProgress {
	i := h.progressIndex(day)
	if i < 0 {
		return h.SetCompletion(day, true, now)
	}

	h.Progress[i].Completed = !h.Progress[i].Completed
	h.UpdatedAt = now
	return h.Progress[i]
}

func (h *Habit) SetCompletion(day CalendarDay, completed bool, now time.Time) DayProgress {
	entry := DayProgress{Date: day, Completed: completed}

	if i := h.progressIndex(day); i >= 0 {
		h.Progress[i] = entry
	} else {
		h.Progress = append(h.Progress, entry)
	}

	h.UpdatedAt = now
	return entry
}

// IsCompleted reports whether day is tracked and completed. Untracked days
// read as not completed.
func (h *Habit) IsCompleted(day CalendarDay) bool {
	i := h.progressIndex(day)
	return i >= 0 && h.Progress[i].Completed
}

// Seed appends an incomplete entry for every day not yet tracked.
func (h *Habit) Seed(days []CalendarDay) {
	tracked := make(map[CalendarDay]bool, len(h.Progress))
	for _, p := range h.Progress {
		tracked[p.Date] = true
	}

	for _, d := range days {
		if !tracked[d] {
			tracked[d] = true
			h.Progress = append(h.Progress, DayProgress{Date: d})
		}
	}
}

func (h *Habit) IsArchived() bool {
	return h.ArchivedAt != nil
}

func (h *Habit) Archive(now time.Time) {
	if h.ArchivedAt != nil {
		return
	}

	h.ArchivedAt = &now
	h.UpdatedAt = now
}

func (h *Habit) Restore(now time.Time) {
	if h.ArchivedAt == nil {
		return
	}
	h.ArchivedAt = nil
	h.UpdatedAt = now
}

// ArchivedFor returns how long the habit has been archived at now, or zero
// for an active habit.
func (h *Habit) ArchivedFor(now time.Time) time.Duration {
	if h.ArchivedAt == nil {
		return 0
	}
	return now.Sub(*h.ArchivedAt)
}

// Clone returns a deep copy so snapshots never alias live state.
func (h *Habit) Clone() *Habit {
	c := *h
	c.Categories = append([]string{}, h.Categories...)
	c.Progress = append([]DayProgress{}, h.Progress...)
	if h.TargetCompletionDate != nil {
		day := *h.TargetCompletionDate
		c.TargetCompletionDate = &day
	}
	if h.ArchivedAt != nil {
		at := *h.ArchivedAt
		c.ArchivedAt = &at
	}
	return &c
}
