package achievement

// Metric names a countable quantity a Count requirement is measured
// against.
type Metric int

const (
	MetricChoresCompleted Metric = iota
	MetricSatsEarned
	MetricLessonsCompleted
	MetricStreakDays
	MetricLevelReached
)

// Condition names a special one-shot requirement.
type Condition int

const (
	// ConditionEarlyCompletion: any chore completed before 9 AM local time.
	ConditionEarlyCompletion Condition = iota
	// ConditionFiveInOneDay: five or more chores completed on one calendar day.
	ConditionFiveInOneDay
)

// Requirement is a closed variant: either a Count toward a numeric
// target or a Special condition that is met or not.
type Requirement interface {
	isRequirement()
}

type Count struct {
	Metric Metric
	Target int64
}

func (Count) isRequirement() {}

type Special struct {
	Condition Condition
}

func (Special) isRequirement() {}

// Target returns the progress value at which a requirement is met.
// Special conditions are binary: met at 1.
func Target(r Requirement) int64 {
	switch req := r.(type) {
	case Count:
		return req.Target
	case Special:
		return 1
	default:
		return 1
	}
}

// Definition is a static achievement. Definitions are never persisted;
// only unlock records are.
type Definition struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	Requirement Requirement `json:"-"`
}

var definitions = []Definition{
	{ID: "first-chore", Title: "First Steps", Description: "Complete your first chore", Icon: "🎯",
		Requirement: Count{Metric: MetricChoresCompleted, Target: 1}},
	{ID: "chore-master-5", Title: "Chore Champion", Description: "Complete 5 chores", Icon: "🏆",
		Requirement: Count{Metric: MetricChoresCompleted, Target: 5}},
	{ID: "chore-master-10", Title: "Super Worker", Description: "Complete 10 chores", Icon: "⭐",
		Requirement: Count{Metric: MetricChoresCompleted, Target: 10}},
	{ID: "chore-master-25", Title: "Chore Legend", Description: "Complete 25 chores", Icon: "🌟",
		Requirement: Count{Metric: MetricChoresCompleted, Target: 25}},
	{ID: "sat-collector-100", Title: "Sat Collector", Description: "Earn 100 satoshis", Icon: "💰",
		Requirement: Count{Metric: MetricSatsEarned, Target: 100}},
	{ID: "sat-collector-1000", Title: "Sat Saver", Description: "Earn 1,000 satoshis", Icon: "💎",
		Requirement: Count{Metric: MetricSatsEarned, Target: 1000}},
	{ID: "sat-collector-10000", Title: "Bitcoin Banker", Description: "Earn 10,000 satoshis", Icon: "🏦",
		Requirement: Count{Metric: MetricSatsEarned, Target: 10000}},
	{ID: "bitcoin-student", Title: "Bitcoin Student", Description: "Complete 3 learning modules", Icon: "📚",
		Requirement: Count{Metric: MetricLessonsCompleted, Target: 3}},
	{ID: "bitcoin-scholar", Title: "Bitcoin Scholar", Description: "Complete all 6 learning modules", Icon: "🎓",
		Requirement: Count{Metric: MetricLessonsCompleted, Target: 6}},
	{ID: "week-warrior", Title: "Week Warrior", Description: "Complete chores for 7 days in a row", Icon: "🔥",
		Requirement: Count{Metric: MetricStreakDays, Target: 7}},
	{ID: "level-5", Title: "Rising Star", Description: "Reach Level 5", Icon: "🚀",
		Requirement: Count{Metric: MetricLevelReached, Target: 5}},
	{ID: "level-10", Title: "Bitcoin Expert", Description: "Reach Level 10", Icon: "👑",
		Requirement: Count{Metric: MetricLevelReached, Target: 10}},
	{ID: "early-bird", Title: "Early Bird", Description: "Complete a chore before 9 AM", Icon: "🌅",
		Requirement: Special{Condition: ConditionEarlyCompletion}},
	{ID: "perfect-day", Title: "Perfect Day", Description: "Complete 5 chores in one day", Icon: "✨",
		Requirement: Special{Condition: ConditionFiveInOneDay}},
}

// Definitions returns a copy of the static achievement catalog.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// ByID returns the definition with the given id, or nil if unknown.
func ByID(id string) *Definition {
	for i := range definitions {
		if definitions[i].ID == id {
			d := definitions[i]
			return &d
		}
	}
	return nil
}
