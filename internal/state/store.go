// Package state implements the reactive state container: the single
// owner of user, chore, ledger, achievement, and lesson state. Every
// mutation persists the touched slices, then emits typed events on the
// container's bus. Operations never return errors for storage failures;
// in-memory state stays authoritative and failures are logged.
package state

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dukerupert/satpocket/internal/event"
	"github.com/dukerupert/satpocket/internal/lesson"
	"github.com/dukerupert/satpocket/internal/metrics"
	"github.com/dukerupert/satpocket/internal/model"
	"github.com/dukerupert/satpocket/internal/sats"
	"github.com/dukerupert/satpocket/internal/storage"
	"github.com/dukerupert/satpocket/internal/validate"
)

// Slice keys in durable storage.
const (
	keyUser         = "user"
	keyChores       = "chores"
	keyTransactions = "transactions"
	keyAchievements = "achievements"
	keyLessons      = "lessons"
)

// Store is the state container. It is safe for concurrent use; the
// mutex serializes mutations so there is never more than one writer.
// Listeners run synchronously inside the emitting call, strictly after
// state and persistence are committed, and outside the lock so they may
// invoke further operations.
type Store struct {
	mu      sync.Mutex
	storage *storage.Store
	bus     *event.Bus
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string
	state   model.State
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc overrides identifier generation. Used by tests.
func WithIDFunc(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// New creates a Store backed by the given durable storage. Call Init
// before using it.
func New(st *storage.Store, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		storage: st,
		bus:     event.NewBus(logger.With("component", "events")),
		logger:  logger,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = s.defaultState()
	return s
}

// Bus returns the container's event bus for subscriptions.
func (s *Store) Bus() *event.Bus {
	return s.bus
}

func (s *Store) defaultState() model.State {
	return model.State{
		User: model.User{
			ID:        s.newID(),
			Name:      "Satoshi Student",
			Avatar:    "👤",
			Balance:   0,
			Level:     1,
			XP:        0,
			CreatedAt: s.now(),
			Settings: model.Settings{
				Difficulty:   model.DifficultyMedium,
				SoundEnabled: true,
				Theme:        model.ThemeLight,
			},
		},
		Chores:       []model.Chore{},
		Transactions: []model.Transaction{},
		Achievements: []model.AchievementRecord{},
		Lessons:      []string{},
	}
}

// Init loads each slice from durable storage, seeding defaults for
// anything absent. A freshly seeded user is persisted immediately so a
// new profile survives a crash before the first mutation.
func (s *Store) Init() {
	metrics.OperationsTotal.WithLabelValues("init").Inc()

	s.mu.Lock()
	s.state = s.defaultState()

	userFound := s.storage.Load(keyUser, &s.state.User)
	s.storage.Load(keyChores, &s.state.Chores)
	s.storage.Load(keyTransactions, &s.state.Transactions)
	s.storage.Load(keyAchievements, &s.state.Achievements)
	s.storage.Load(keyLessons, &s.state.Lessons)

	if !userFound {
		s.storage.Save(keyUser, s.state.User)
	}
	snapshot := cloneState(s.state)
	s.mu.Unlock()

	s.bus.Emit(event.StoreInitialized{State: snapshot})
}

// State returns a deep copy of the full state.
func (s *Store) State() model.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.state)
}

// User returns a copy of the user profile.
func (s *Store) User() model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.User
}

// Chores returns a copy of all chores.
func (s *Store) Chores() []model.Chore {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneChores(s.state.Chores)
}

// PendingChores returns copies of chores still pending.
func (s *Store) PendingChores() []model.Chore {
	return s.choresByStatus(model.ChoreStatusPending)
}

// CompletedChores returns copies of completed chores.
func (s *Store) CompletedChores() []model.Chore {
	return s.choresByStatus(model.ChoreStatusCompleted)
}

func (s *Store) choresByStatus(status model.ChoreStatus) []model.Chore {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Chore{}
	for _, c := range s.state.Chores {
		if c.Status == status {
			out = append(out, cloneChore(c))
		}
	}
	return out
}

// Transactions returns a copy of the ledger, newest first.
func (s *Store) Transactions() []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Transaction, len(s.state.Transactions))
	copy(out, s.state.Transactions)
	return out
}

// Achievements returns copies of all achievement records.
func (s *Store) Achievements() []model.AchievementRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRecords(s.state.Achievements)
}

// CompletedLessons returns a copy of the completed lesson ids.
func (s *Store) CompletedLessons() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.state.Lessons))
	copy(out, s.state.Lessons)
	return out
}

// UserPatch is a shallow merge into the user profile. Nil fields are
// left untouched. Level is deliberately absent: it is derived from XP.
type UserPatch struct {
	Name       *string         `json:"name,omitempty"`
	Avatar     *string         `json:"avatar,omitempty"`
	Balance    *int64          `json:"balance,omitempty"`
	XP         *int64          `json:"xp,omitempty"`
	ParentMode *bool           `json:"parentMode,omitempty"`
	Settings   *model.Settings `json:"settings,omitempty"`
}

// SetUser merges the patch into the user, persists, and emits
// user:updated. When XP changes the level is recomputed so the level
// invariant holds after every experience mutation.
func (s *Store) SetUser(patch UserPatch) {
	metrics.OperationsTotal.WithLabelValues("set_user").Inc()

	s.mu.Lock()
	u := &s.state.User
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Avatar != nil {
		u.Avatar = *patch.Avatar
	}
	if patch.Balance != nil {
		u.Balance = *patch.Balance
	}
	if patch.XP != nil {
		u.XP = *patch.XP
		u.Level = model.LevelForXP(u.XP)
	}
	if patch.ParentMode != nil {
		u.ParentMode = *patch.ParentMode
	}
	if patch.Settings != nil {
		u.Settings = *patch.Settings
	}
	s.storage.Save(keyUser, s.state.User)
	updated := s.state.User
	s.mu.Unlock()

	s.bus.Emit(event.UserUpdated{User: updated})
}

// ChoreData carries the caller-supplied fields of a new chore.
type ChoreData struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Reward      int64               `json:"reward"`
	Category    model.ChoreCategory `json:"category"`
	Difficulty  model.Difficulty    `json:"difficulty"`
	CreatedBy   string              `json:"createdBy"`
}

// AddChore creates a pending chore with a fresh id and creation
// timestamp, persists the chore list, and emits chore:added.
func (s *Store) AddChore(data ChoreData) model.Chore {
	metrics.OperationsTotal.WithLabelValues("add_chore").Inc()

	s.mu.Lock()
	chore := model.Chore{
		ID:          s.newID(),
		Title:       data.Title,
		Description: data.Description,
		Reward:      data.Reward,
		Category:    data.Category,
		Difficulty:  data.Difficulty,
		Status:      model.ChoreStatusPending,
		CreatedAt:   s.now(),
		CreatedBy:   data.CreatedBy,
	}
	s.state.Chores = append(s.state.Chores, chore)
	s.storage.Save(keyChores, s.state.Chores)
	s.mu.Unlock()

	s.bus.Emit(event.ChoreAdded{Chore: chore})
	return chore
}

// ChorePatch is a partial update to a chore. Status is deliberately
// absent: the pending→completed transition only happens through
// CompleteChore.
type ChorePatch struct {
	Title       *string              `json:"title,omitempty"`
	Description *string              `json:"description,omitempty"`
	Reward      *int64               `json:"reward,omitempty"`
	Category    *model.ChoreCategory `json:"category,omitempty"`
	Difficulty  *model.Difficulty    `json:"difficulty,omitempty"`
}

// UpdateChore merges the patch into the matching chore. Unknown ids are
// a silent no-op.
func (s *Store) UpdateChore(id string, patch ChorePatch) {
	metrics.OperationsTotal.WithLabelValues("update_chore").Inc()

	s.mu.Lock()
	idx := s.choreIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	c := &s.state.Chores[idx]
	if patch.Title != nil {
		c.Title = *patch.Title
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.Reward != nil {
		c.Reward = *patch.Reward
	}
	if patch.Category != nil {
		c.Category = *patch.Category
	}
	if patch.Difficulty != nil {
		c.Difficulty = *patch.Difficulty
	}
	s.storage.Save(keyChores, s.state.Chores)
	updated := cloneChore(*c)
	s.mu.Unlock()

	s.bus.Emit(event.ChoreUpdated{Chore: updated})
}

// DeleteChore removes the matching chore. Unknown ids are a silent
// no-op. Emits chore:deleted with the removed chore.
func (s *Store) DeleteChore(id string) {
	metrics.OperationsTotal.WithLabelValues("delete_chore").Inc()

	s.mu.Lock()
	idx := s.choreIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	removed := s.state.Chores[idx]
	s.state.Chores = append(s.state.Chores[:idx], s.state.Chores[idx+1:]...)
	s.storage.Save(keyChores, s.state.Chores)
	s.mu.Unlock()

	s.bus.Emit(event.ChoreDeleted{Chore: removed})
}

// CompleteChore transitions a pending chore to completed, credits the
// reward to balance and XP, appends an earn transaction, and persists
// the three touched slices in one transaction. Completing an unknown or
// already-completed chore is a no-op, so repeated requests can never
// double-credit.
func (s *Store) CompleteChore(id string) {
	metrics.OperationsTotal.WithLabelValues("complete_chore").Inc()

	s.mu.Lock()
	idx := s.choreIndex(id)
	if idx < 0 || s.state.Chores[idx].Status == model.ChoreStatusCompleted {
		s.mu.Unlock()
		return
	}

	now := s.now()
	c := &s.state.Chores[idx]
	c.Status = model.ChoreStatusCompleted
	completedAt := now
	c.CompletedAt = &completedAt

	u := &s.state.User
	previousBalance := u.Balance
	u.Balance = sats.Add(u.Balance, c.Reward)

	u.XP += c.Reward
	leveledUp := false
	if newLevel := model.LevelForXP(u.XP); newLevel > u.Level {
		u.Level = newLevel
		leveledUp = true
	}

	tx := model.Transaction{
		ID:           s.newID(),
		Type:         model.TransactionEarn,
		Amount:       c.Reward,
		Description:  fmt.Sprintf("Completed: %s", c.Title),
		ChoreID:      c.ID,
		Timestamp:    now,
		BalanceAfter: u.Balance,
	}
	s.state.Transactions = append([]model.Transaction{tx}, s.state.Transactions...)

	s.storage.SaveMany(map[string]any{
		keyChores:       s.state.Chores,
		keyUser:         s.state.User,
		keyTransactions: s.state.Transactions,
	})

	completed := cloneChore(*c)
	level := u.Level
	currentBalance := u.Balance
	s.mu.Unlock()

	if leveledUp {
		s.bus.Emit(event.LevelUp{Level: level})
	}
	s.bus.Emit(event.ChoreCompleted{Chore: completed})
	s.bus.Emit(event.TransactionAdded{Transaction: tx})
	s.bus.Emit(event.BalanceChanged{
		Previous: previousBalance,
		Current:  currentBalance,
		Change:   completed.Reward,
	})
}

// TransactionData carries the caller-supplied fields of a ledger entry.
type TransactionData struct {
	Type        model.TransactionType `json:"type"`
	Amount      int64                 `json:"amount"`
	Description string                `json:"description"`
	ChoreID     string                `json:"choreId,omitempty"`
}

// AddTransaction prepends a ledger entry with a fresh id, timestamp,
// and a balance-after snapshot of the current balance.
func (s *Store) AddTransaction(data TransactionData) model.Transaction {
	metrics.OperationsTotal.WithLabelValues("add_transaction").Inc()

	s.mu.Lock()
	tx := model.Transaction{
		ID:           s.newID(),
		Type:         data.Type,
		Amount:       data.Amount,
		Description:  data.Description,
		ChoreID:      data.ChoreID,
		Timestamp:    s.now(),
		BalanceAfter: s.state.User.Balance,
	}
	s.state.Transactions = append([]model.Transaction{tx}, s.state.Transactions...)
	s.storage.Save(keyTransactions, s.state.Transactions)
	s.mu.Unlock()

	s.bus.Emit(event.TransactionAdded{Transaction: tx})
	return tx
}

// UnlockAchievement marks an achievement as unlocked, creating the
// record on first unlock. Unlocks are monotonic: a record that is
// already unlocked stays unlocked and emits nothing.
func (s *Store) UnlockAchievement(id string) {
	metrics.OperationsTotal.WithLabelValues("unlock_achievement").Inc()

	s.mu.Lock()
	now := s.now()
	changed := false

	found := false
	for i := range s.state.Achievements {
		if s.state.Achievements[i].ID != id {
			continue
		}
		found = true
		if !s.state.Achievements[i].Unlocked {
			s.state.Achievements[i].Unlocked = true
			s.state.Achievements[i].UnlockedAt = &now
			changed = true
		}
		break
	}
	if !found {
		s.state.Achievements = append(s.state.Achievements, model.AchievementRecord{
			ID:         id,
			Unlocked:   true,
			UnlockedAt: &now,
		})
		changed = true
	}

	if !changed {
		s.mu.Unlock()
		return
	}
	s.storage.Save(keyAchievements, s.state.Achievements)
	s.mu.Unlock()

	s.bus.Emit(event.AchievementUnlocked{AchievementID: id})
}

// CompleteLesson adds a lesson to the completed set. Re-completing is a
// no-op. A lesson present in the catalog credits its reward as a bonus
// transaction against the balance (lessons grant no XP).
func (s *Store) CompleteLesson(id string) {
	metrics.OperationsTotal.WithLabelValues("complete_lesson").Inc()

	s.mu.Lock()
	for _, done := range s.state.Lessons {
		if done == id {
			s.mu.Unlock()
			return
		}
	}
	s.state.Lessons = append(s.state.Lessons, id)

	var bonus *model.Transaction
	var previousBalance, currentBalance int64
	if l := lesson.ByID(id); l != nil {
		u := &s.state.User
		previousBalance = u.Balance
		u.Balance = sats.Add(u.Balance, l.Reward)
		currentBalance = u.Balance

		tx := model.Transaction{
			ID:           s.newID(),
			Type:         model.TransactionBonus,
			Amount:       l.Reward,
			Description:  fmt.Sprintf("Completed lesson: %s", l.Title),
			Timestamp:    s.now(),
			BalanceAfter: u.Balance,
		}
		s.state.Transactions = append([]model.Transaction{tx}, s.state.Transactions...)
		bonus = &tx

		s.storage.SaveMany(map[string]any{
			keyLessons:      s.state.Lessons,
			keyUser:         s.state.User,
			keyTransactions: s.state.Transactions,
		})
	} else {
		s.storage.Save(keyLessons, s.state.Lessons)
	}
	s.mu.Unlock()

	s.bus.Emit(event.LessonCompleted{LessonID: id})
	if bonus != nil {
		s.bus.Emit(event.TransactionAdded{Transaction: *bonus})
		s.bus.Emit(event.BalanceChanged{
			Previous: previousBalance,
			Current:  currentBalance,
			Change:   bonus.Amount,
		})
	}
}

// SetParentPIN validates and bcrypt-hashes a 4-digit PIN, storing only
// the hash.
func (s *Store) SetParentPIN(pin string) error {
	metrics.OperationsTotal.WithLabelValues("set_parent_pin").Inc()

	if err := validate.PIN(pin); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash pin: %w", err)
	}

	s.mu.Lock()
	s.state.User.ParentPIN = string(hash)
	s.storage.Save(keyUser, s.state.User)
	updated := s.state.User
	s.mu.Unlock()

	s.bus.Emit(event.UserUpdated{User: updated})
	return nil
}

// VerifyParentPIN reports whether pin matches the stored hash. Always
// false when no PIN is set.
func (s *Store) VerifyParentPIN(pin string) bool {
	metrics.OperationsTotal.WithLabelValues("verify_parent_pin").Inc()

	s.mu.Lock()
	hash := s.state.User.ParentPIN
	s.mu.Unlock()

	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}

// SetParentMode toggles the parent-mode flag.
func (s *Store) SetParentMode(enabled bool) {
	metrics.OperationsTotal.WithLabelValues("set_parent_mode").Inc()
	s.SetUser(UserPatch{ParentMode: &enabled})
}

// Reset replaces all slices with freshly seeded defaults, clears every
// namespaced durable key, and persists the new user.
func (s *Store) Reset() {
	metrics.OperationsTotal.WithLabelValues("reset").Inc()

	s.mu.Lock()
	s.state = s.defaultState()
	s.storage.Clear()
	s.storage.Save(keyUser, s.state.User)
	snapshot := cloneState(s.state)
	s.mu.Unlock()

	s.bus.Emit(event.StoreReset{State: snapshot})
}

// ExportData returns a snapshot document of all persisted slices.
func (s *Store) ExportData() (string, error) {
	metrics.OperationsTotal.WithLabelValues("export").Inc()
	return s.storage.ExportAll()
}

// ImportData replaces persisted slices from a snapshot document and, on
// success, reloads in-memory state from storage.
func (s *Store) ImportData(text string) bool {
	metrics.OperationsTotal.WithLabelValues("import").Inc()

	if !s.storage.ImportAll(text) {
		return false
	}
	s.Init()
	return true
}

// choreIndex returns the index of the chore with the given id, or -1.
// Caller must hold s.mu.
func (s *Store) choreIndex(id string) int {
	for i := range s.state.Chores {
		if s.state.Chores[i].ID == id {
			return i
		}
	}
	return -1
}
