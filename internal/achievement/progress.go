// Package achievement computes achievement progress and unlock
// eligibility from state snapshots. Everything here is pure: callers
// pass the data and the clock, nothing is mutated.
package achievement

import (
	"math"
	"time"

	"github.com/dukerupert/satpocket/internal/model"
)

const maxStreakDays = 365

// Progress returns the current progress value for a definition.
// lessonCount is the number of completed lessons; pass 0 when lesson
// data is not at hand and the lessons metric reads as no progress.
func Progress(def Definition, user model.User, chores []model.Chore, transactions []model.Transaction, lessonCount int, now time.Time) int64 {
	switch req := def.Requirement.(type) {
	case Count:
		switch req.Metric {
		case MetricChoresCompleted:
			var n int64
			for _, c := range chores {
				if c.Status == model.ChoreStatusCompleted {
					n++
				}
			}
			return n
		case MetricSatsEarned:
			var sum int64
			for _, t := range transactions {
				if t.Type == model.TransactionEarn {
					sum += t.Amount
				}
			}
			return sum
		case MetricLessonsCompleted:
			return int64(lessonCount)
		case MetricStreakDays:
			return int64(Streak(chores, now))
		case MetricLevelReached:
			return int64(user.Level)
		}
		return 0
	case Special:
		if conditionMet(req.Condition, chores) {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// Streak counts consecutive calendar days with at least one completed
// chore, ending at today — or at yesterday, since a day with no
// completions yet does not break a streak until it has fully elapsed.
// Days are compared at local midnight in now's location.
func Streak(chores []model.Chore, now time.Time) int {
	days := completionDays(chores)
	if len(days) == 0 {
		return 0
	}

	day := startOfDay(now)
	if !days[dayKey(day)] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for i := 0; i < maxStreakDays; i++ {
		if !days[dayKey(day)] {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// CheckUnlocks returns the ids of definitions whose progress has
// reached their target and that are not already among the unlocked
// records. It performs no mutation; the caller unlocks each id.
func CheckUnlocks(user model.User, chores []model.Chore, transactions []model.Transaction, lessonCount int, unlocked []model.AchievementRecord, now time.Time) []string {
	unlockedIDs := make(map[string]bool, len(unlocked))
	for _, rec := range unlocked {
		if rec.Unlocked {
			unlockedIDs[rec.ID] = true
		}
	}

	var toUnlock []string
	for _, def := range definitions {
		if unlockedIDs[def.ID] {
			continue
		}
		if Progress(def, user, chores, transactions, lessonCount, now) >= Target(def.Requirement) {
			toUnlock = append(toUnlock, def.ID)
		}
	}
	return toUnlock
}

// WithProgress annotates a definition with its unlock state and
// progress toward the target.
type WithProgress struct {
	Definition
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlockedAt,omitempty"`
	Progress   int64      `json:"progress"`
	Target     int64      `json:"target"`
	Percentage int        `json:"percentage"`
}

// AllWithProgress returns every definition annotated with unlock state,
// progress, and a capped percentage.
func AllWithProgress(user model.User, chores []model.Chore, transactions []model.Transaction, lessonCount int, records []model.AchievementRecord, now time.Time) []WithProgress {
	byID := make(map[string]model.AchievementRecord, len(records))
	for _, rec := range records {
		byID[rec.ID] = rec
	}

	out := make([]WithProgress, 0, len(definitions))
	for _, def := range definitions {
		progress := Progress(def, user, chores, transactions, lessonCount, now)
		target := Target(def.Requirement)

		wp := WithProgress{
			Definition: def,
			Progress:   progress,
			Target:     target,
			Percentage: int(math.Min(100, math.Round(float64(progress)/float64(target)*100))),
		}
		if rec, ok := byID[def.ID]; ok && rec.Unlocked {
			wp.Unlocked = true
			wp.UnlockedAt = rec.UnlockedAt
		}
		out = append(out, wp)
	}
	return out
}

func conditionMet(cond Condition, chores []model.Chore) bool {
	switch cond {
	case ConditionEarlyCompletion:
		for _, c := range chores {
			if c.Status == model.ChoreStatusCompleted && c.CompletedAt != nil && c.CompletedAt.Local().Hour() < 9 {
				return true
			}
		}
		return false
	case ConditionFiveInOneDay:
		perDay := make(map[string]int)
		for _, c := range chores {
			if c.Status != model.ChoreStatusCompleted || c.CompletedAt == nil {
				continue
			}
			key := dayKey(startOfDay(*c.CompletedAt))
			perDay[key]++
			if perDay[key] >= 5 {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func completionDays(chores []model.Chore) map[string]bool {
	days := make(map[string]bool)
	for _, c := range chores {
		if c.Status == model.ChoreStatusCompleted && c.CompletedAt != nil {
			days[dayKey(startOfDay(*c.CompletedAt))] = true
		}
	}
	return days
}

func startOfDay(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
