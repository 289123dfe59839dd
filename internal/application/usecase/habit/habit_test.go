package habit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/application/adapter"
	"github.com/life-planner/backend/internal/application/adapter/adaptertest"
	"github.com/life-planner/backend/internal/application/usecase/replication"
	"github.com/life-planner/backend/internal/domain/aggregation"
	"github.com/life-planner/backend/internal/domain/entity"
	domainerror "github.com/life-planner/backend/internal/domain/error"
)

type fixture struct {
	habits      *adaptertest.HabitRepository
	completions *adaptertest.HabitCompletionRepository
	apply       *replication.ApplyDeltaUseCase
}

func newFixture() *fixture {
	f := &fixture{
		habits:      adaptertest.NewHabitRepository(),
		completions: adaptertest.NewHabitCompletionRepository(),
	}
	f.apply = replication.NewApplyDeltaUseCase(
		adaptertest.NewTransactionRepository(),
		f.habits,
		f.completions,
		adaptertest.NewGoalRepository(),
	)
	return f
}

func (f *fixture) mustCreate(t *testing.T, userID uuid.UUID, name, category string) *entity.Habit {
	t.Helper()
	out, err := NewCreateHabitUseCase(f.apply).Execute(context.Background(), CreateHabitInput{
		UserID:   userID,
		Name:     name,
		Category: category,
	})
	if err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}
	return out.Habit
}

func habitCode(t *testing.T, err error) domainerror.HabitErrorCode {
	t.Helper()
	var habitErr *domainerror.HabitError
	if !errors.As(err, &habitErr) {
		t.Fatalf("expected HabitError, got %v", err)
	}
	return habitErr.Code
}

func TestCreateHabitUseCase(t *testing.T) {
	userID := uuid.New()

	t.Run("defaults category", func(t *testing.T) {
		f := newFixture()
		h := f.mustCreate(t, userID, "  Meditate ", "")

		if h.Name != "Meditate" {
			t.Errorf("expected trimmed name, got %q", h.Name)
		}
		if h.Category != DefaultCategory {
			t.Errorf("expected category %s, got %s", DefaultCategory, h.Category)
		}
	})

	t.Run("requires name", func(t *testing.T) {
		f := newFixture()
		_, err := NewCreateHabitUseCase(f.apply).Execute(context.Background(), CreateHabitInput{UserID: userID, Name: " "})
		if code := habitCode(t, err); code != domainerror.ErrCodeHabitNameRequired {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeHabitNameRequired, code)
		}
	})
}

func TestRecordCompletionUseCase(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("one entry per day", func(t *testing.T) {
		f := newFixture()
		h := f.mustCreate(t, userID, "Run", "Fitness")
		uc := NewRecordCompletionUseCase(f.habits, f.completions, f.apply)

		first, err := uc.Execute(ctx, RecordCompletionInput{
			UserID: userID, HabitID: h.ID, Date: time.Date(2025, time.May, 4, 7, 30, 0, 0, time.UTC), Completed: true,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := uc.Execute(ctx, RecordCompletionInput{
			UserID: userID, HabitID: h.ID, Date: time.Date(2025, time.May, 4, 21, 0, 0, 0, time.UTC), Completed: false,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if first.Completion.ID != second.Completion.ID {
			t.Error("expected the second entry to replace the first")
		}
		entries, _ := f.completions.FindByUser(ctx, adapter.CompletionFilter{UserID: userID})
		if len(entries) != 1 || entries[0].Completed {
			t.Errorf("expected a single not-completed entry, got %+v", entries)
		}
		if entries[0].Category != "Fitness" {
			t.Errorf("expected category Fitness, got %s", entries[0].Category)
		}
	})

	t.Run("missing date", func(t *testing.T) {
		f := newFixture()
		h := f.mustCreate(t, userID, "Run", "Fitness")
		_, err := NewRecordCompletionUseCase(f.habits, f.completions, f.apply).Execute(ctx, RecordCompletionInput{UserID: userID, HabitID: h.ID})
		if code := habitCode(t, err); code != domainerror.ErrCodeInvalidCompletionDate {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidCompletionDate, code)
		}
	})

	t.Run("other user's habit", func(t *testing.T) {
		f := newFixture()
		h := f.mustCreate(t, userID, "Run", "Fitness")
		_, err := NewRecordCompletionUseCase(f.habits, f.completions, f.apply).Execute(ctx, RecordCompletionInput{
			UserID: uuid.New(), HabitID: h.ID, Date: time.Now(), Completed: true,
		})
		if code := habitCode(t, err); code != domainerror.ErrCodeNotAuthorizedHabit {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeNotAuthorizedHabit, code)
		}
	})
}

func TestDeleteHabitUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	userID := uuid.New()
	h := f.mustCreate(t, userID, "Run", "Fitness")

	if _, err := NewRecordCompletionUseCase(f.habits, f.completions, f.apply).Execute(ctx, RecordCompletionInput{
		UserID: userID, HabitID: h.ID, Date: time.Date(2025, time.May, 4, 0, 0, 0, 0, time.UTC), Completed: true,
	}); err != nil {
		t.Fatalf("failed to record completion: %v", err)
	}

	out, err := NewDeleteHabitUseCase(f.habits, f.apply).Execute(ctx, DeleteHabitInput{HabitID: h.ID, UserID: userID})
	if err != nil || !out.Success {
		t.Fatalf("unexpected result %+v, %v", out, err)
	}

	listed, err := NewListHabitsUseCase(f.habits, f.completions).Execute(ctx, ListHabitsInput{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listed.Habits) != 0 {
		t.Errorf("expected no habits, got %d", len(listed.Habits))
	}
	// History outlives the habit.
	if len(listed.Completions) != 1 {
		t.Errorf("expected history to be kept, got %d entries", len(listed.Completions))
	}

	t.Run("twice", func(t *testing.T) {
		_, err := NewDeleteHabitUseCase(f.habits, f.apply).Execute(ctx, DeleteHabitInput{HabitID: h.ID, UserID: userID})
		if code := habitCode(t, err); code != domainerror.ErrCodeHabitNotFound {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeHabitNotFound, code)
		}
	})
}

func TestListHabitsUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	userID := uuid.New()
	h := f.mustCreate(t, userID, "Read", "Learning")
	f.mustCreate(t, userID, "Cook", "")

	record := NewRecordCompletionUseCase(f.habits, f.completions, f.apply)
	for _, d := range []time.Time{
		time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
	} {
		if _, err := record.Execute(ctx, RecordCompletionInput{UserID: userID, HabitID: h.ID, Date: d, Completed: true}); err != nil {
			t.Fatalf("failed to record completion: %v", err)
		}
	}

	may := aggregation.MonthWindow(2025, time.May)
	out, err := NewListHabitsUseCase(f.habits, f.completions).Execute(ctx, ListHabitsInput{UserID: userID, Window: &may})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.Habits) != 2 || out.Habits[0].Name != "Cook" {
		t.Errorf("expected habits ordered by name, got %+v", out.Habits)
	}
	if len(out.Completions) != 1 {
		t.Errorf("expected 1 entry in May, got %d", len(out.Completions))
	}
}
