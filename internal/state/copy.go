package state

import "github.com/dukerupert/satpocket/internal/model"

// Deep-copy helpers. Accessors hand out copies so callers can never
// mutate container state through a returned value.

func cloneChore(c model.Chore) model.Chore {
	if c.CompletedAt != nil {
		t := *c.CompletedAt
		c.CompletedAt = &t
	}
	return c
}

func cloneChores(chores []model.Chore) []model.Chore {
	out := make([]model.Chore, len(chores))
	for i, c := range chores {
		out[i] = cloneChore(c)
	}
	return out
}

func cloneRecords(records []model.AchievementRecord) []model.AchievementRecord {
	out := make([]model.AchievementRecord, len(records))
	for i, r := range records {
		if r.UnlockedAt != nil {
			t := *r.UnlockedAt
			r.UnlockedAt = &t
		}
		out[i] = r
	}
	return out
}

func cloneState(st model.State) model.State {
	out := model.State{
		User:         st.User,
		Chores:       cloneChores(st.Chores),
		Transactions: make([]model.Transaction, len(st.Transactions)),
		Achievements: cloneRecords(st.Achievements),
		Lessons:      make([]string, len(st.Lessons)),
	}
	copy(out.Transactions, st.Transactions)
	copy(out.Lessons, st.Lessons)
	return out
}
