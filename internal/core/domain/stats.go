package domain

// MonthCount is the number of completed days in one calendar month.
type MonthCount struct {
	Label string `json:"label" yaml:"label"`
	Year  int    `json:"year" yaml:"year"`
	Month int    `json:"month" yaml:"month"`
	Count int    `json:"count" yaml:"count"`
}

// WeekdayRate is the completion percentage of one weekday bucket.
type WeekdayRate struct {
	Weekday int    `json:"weekday" yaml:"weekday"`
	Label   string `json:"label" yaml:"label"`
	Rate    int    `json:"rate" yaml:"rate"`
	Tracked int    `json:"tracked" yaml:"tracked"`
}

type HabitStats struct {
	HabitID            string        `json:"habitId" yaml:"habitId"`
	Name               string        `json:"name" yaml:"name"`
	Color              string        `json:"color" yaml:"color"`
	Icon               string        `json:"icon" yaml:"icon"`
	CompletionRate     int           `json:"completionRate" yaml:"completionRate"`
	CurrentStreak      int           `json:"currentStreak" yaml:"currentStreak"`
	BestStreak         int           `json:"bestStreak" yaml:"bestStreak"`
	CompletedDays      int           `json:"completedDays" yaml:"completedDays"`
	TrackedDays        int           `json:"trackedDays" yaml:"trackedDays"`
	CompletedToday     bool          `json:"completedToday" yaml:"completedToday"`
	MonthlyConsistency []MonthCount  `json:"monthlyConsistency" yaml:"monthlyConsistency"`
	WeeklyCompletion   []WeekdayRate `json:"weeklyCompletion" yaml:"weeklyCompletion"`
}

// Overview aggregates the active habits for the analytics screen.
type Overview struct {
	Date                  CalendarDay  `json:"date" yaml:"date"`
	ActiveHabits          int          `json:"activeHabits" yaml:"activeHabits"`
	CompletedToday        int          `json:"completedToday" yaml:"completedToday"`
	AverageCompletionRate int          `json:"averageCompletionRate" yaml:"averageCompletionRate"`
	BestCurrentStreak     int          `json:"bestCurrentStreak" yaml:"bestCurrentStreak"`
	BestStreak            int          `json:"bestStreak" yaml:"bestStreak"`
	Habits                []HabitStats `json:"habits" yaml:"habits"`
}
