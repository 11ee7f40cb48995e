package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/persistence"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/services"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type cliApp struct {
	habits *services.HabitService
	stats  *services.StatsService
	prefs  *services.PreferencesService
}

func defaultDataPath() string {
	if p := os.Getenv("DATA_PATH"); p != "" {
		return p
	}
	return filepath.Join("data", "kanso.json")
}

// loadApp opens the document at dataPath. Saves are synchronous: the process
// exits right after the command runs.
func loadApp(ctx context.Context, dataPath string) (*cliApp, error) {
	blobs, err := repository.NewFileBlobStore(dataPath)
	if err != nil {
		return nil, err
	}

	gateway := persistence.NewGateway(blobs, domain.DefaultStoreKey, 0)
	store := services.NewStore(gateway)
	if err := store.Load(ctx, gateway); err != nil {
		if !errors.Is(err, domain.ErrMalformedData) {
			return nil, err
		}
		log.Printf("[CLI] %s is unreadable, starting from defaults; the next change overwrites it", blobs.Path())
	}

	clock := services.SystemClock{}
	return &cliApp{
		habits: services.NewHabitService(store, clock, services.DefaultSeedDays, services.DefaultRetention),
		stats:  services.NewStatsService(store, clock),
		prefs:  services.NewPreferencesService(store),
	}, nil
}

func newRootCmd() *cobra.Command {
	var dataPath string

	root := &cobra.Command{
		Use:           "kanso",
		Short:         "Local-first habit tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataPath, "data", defaultDataPath(), "path of the habit document")

	root.AddCommand(newAddCmd(&dataPath))
	root.AddCommand(newListCmd(&dataPath))
	root.AddCommand(newToggleCmd(&dataPath))
	root.AddCommand(newLifecycleCmd(&dataPath, "archive", "Archive a habit", (*services.HabitService).ArchiveHabit))
	root.AddCommand(newLifecycleCmd(&dataPath, "restore", "Restore an archived habit", (*services.HabitService).RestoreHabit))
	root.AddCommand(newLifecycleCmd(&dataPath, "delete", "Permanently delete a habit", (*services.HabitService).PermanentlyDeleteHabit))
	root.AddCommand(newStatsCmd(&dataPath))
	root.AddCommand(newSweepCmd(&dataPath))
	root.AddCommand(newPrefsCmd(&dataPath))
	return root
}

func newAddCmd(dataPath *string) *cobra.Command {
	var input services.CreateHabitInput

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), *dataPath)
			if err != nil {
				return err
			}
			input.Name = args[0]
			habit, err := app.habits.AddHabit(cmd.Context(), input)
			if habit == nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", habit.Name, habit.ID)
			return err
		},
	}
	cmd.Flags().StringVar(&input.Subtitle, "subtitle", "", "short description")
	cmd.Flags().StringVar(&input.Color, "color", "", "display color")
	cmd.Flags().StringVar(&input.Icon, "icon", "", "icon name")
	cmd.Flags().StringSliceVar(&input.Categories, "categories", nil, "categories")
	cmd.Flags().StringVar(&input.TargetCompletionDate, "target", "", "target completion date (YYYY-MM-DD)")
	return cmd
}

func newListCmd(dataPath *string) *cobra.Command {
	var archived bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List habits",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), *dataPath)
			if err != nil {
				return err
			}

			habits := app.habits.ListActive()
			if archived {
				habits, err = app.habits.ListArchived(cmd.Context())
				if err != nil {
					return err
				}
			}

			if len(habits) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no habits")
				return nil
			}
			today := app.habits.Today()
			for _, h := range habits {
				mark := " "
				if h.IsCompleted(today) {
					mark = "x"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\t%s\n", mark, h.ID, h.Name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&archived, "archived", false, "list archived habits instead")
	return cmd
}

func newToggleCmd(dataPath *string) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Toggle completion for a day (default today)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), *dataPath)
			if err != nil {
				return err
			}
			day := app.habits.Today()
			if date != "" {
				day = domain.CalendarDay(date)
			}
			progress, err := app.habits.ToggleCompletion(cmd.Context(), args[0], day)
			if err != nil {
				return err
			}
			state := "open"
			if progress.Completed {
				state = "done"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", progress.Date, state)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day to toggle (YYYY-MM-DD)")
	return cmd
}

func newLifecycleCmd(dataPath *string, use, short string, op func(*services.HabitService, context.Context, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), *dataPath)
			if err != nil {
				return err
			}
			if err := op(app.habits, cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", use, args[0])
			return nil
		},
	}
}

func newStatsCmd(dataPath *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "stats [id]",
		Short: "Show statistics for one habit, or the overview",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "text" && output != "yaml" {
				return fmt.Errorf("--output must be text or yaml")
			}
			app, err := loadApp(cmd.Context(), *dataPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				overview := app.stats.Overview()
				if output == "yaml" {
					return writeYAML(out, overview)
				}
				_, _ = fmt.Fprintf(out, "date: %s\nactive: %d\ncompleted today: %d\naverage rate: %d%%\nbest current streak: %d\n",
					overview.Date, overview.ActiveHabits, overview.CompletedToday, overview.AverageCompletionRate, overview.BestCurrentStreak)
				return nil
			}

			stats, err := app.stats.HabitStats(args[0])
			if err != nil {
				return err
			}
			if output == "yaml" {
				return writeYAML(out, stats)
			}
			_, _ = fmt.Fprintf(out, "%s\nrate: %d%% (%d/%d)\ncurrent streak: %d\nbest streak: %d\n",
				stats.Name, stats.CompletionRate, stats.CompletedDays, stats.TrackedDays, stats.CurrentStreak, stats.BestStreak)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text|yaml")
	return cmd
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func newSweepCmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Purge habits archived longer than the retention period",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), *dataPath)
			if err != nil {
				return err
			}
			purged, err := app.habits.SweepArchived(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "purged %d\n", purged)
			return nil
		},
	}
}

func newPrefsCmd(dataPath *string) *cobra.Command {
	prefs := &cobra.Command{
		Use:   "prefs",
		Short: "Show display preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), *dataPath)
			if err != nil {
				return err
			}
			return writeYAML(cmd.OutOrStdout(), app.prefs.Get())
		},
	}

	prefs.AddCommand(&cobra.Command{
		Use:   "toggle <name>",
		Short: "Flip a preference: " + strings.Join([]string{domain.PrefWeekStartsOnMonday, domain.PrefHighlightCurrentDay, domain.PrefShowAnalytics}, "|"),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), *dataPath)
			if err != nil {
				return err
			}
			updated, err := app.prefs.Toggle(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeYAML(cmd.OutOrStdout(), updated)
		},
	})
	return prefs
}
