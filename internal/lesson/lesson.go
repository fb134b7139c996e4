// Package lesson holds the static learning-module catalog. Completing a
// lesson's quiz credits its reward as a bonus transaction.
package lesson

type Question struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"`
	Explanation string   `json:"explanation"`
}

type Lesson struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Level     int        `json:"level"`
	Duration  string     `json:"duration"`
	Icon      string     `json:"icon"`
	Reward    int64      `json:"reward"`
	KeyPoints []string   `json:"keyPoints"`
	Quiz      []Question `json:"quiz"`
}

var catalog = []Lesson{
	{
		ID:       "lesson-1",
		Title:    "What is Bitcoin?",
		Level:    1,
		Duration: "3 min",
		Icon:     "₿",
		Reward:   10,
		KeyPoints: []string{
			"Bitcoin is digital money that works on the internet",
			"You can send it anywhere in the world instantly",
			"It's not controlled by any country or bank",
			"It's secured by computers all over the world",
		},
		Quiz: []Question{{
			Question:    "What is Bitcoin?",
			Options:     []string{"Digital money", "A video game", "A toy", "A bank"},
			Correct:     0,
			Explanation: "Bitcoin is digital money that exists only on computers and the internet!",
		}},
	},
	{
		ID:       "lesson-2",
		Title:    "What are Satoshis?",
		Level:    1,
		Duration: "2 min",
		Icon:     "⚡",
		Reward:   15,
		KeyPoints: []string{
			"1 Bitcoin = 100,000,000 satoshis",
			"Satoshis are named after Bitcoin's mysterious creator, Satoshi Nakamoto",
			"You can earn sats by completing chores in this app!",
			"Even small amounts of sats can add up over time",
		},
		Quiz: []Question{{
			Question:    "How many satoshis are in 1 Bitcoin?",
			Options:     []string{"100", "1,000", "1,000,000", "100,000,000"},
			Correct:     3,
			Explanation: "One Bitcoin equals 100,000,000 satoshis - that's a lot of tiny pieces!",
		}},
	},
	{
		ID:       "lesson-3",
		Title:    "What is a Blockchain?",
		Level:    2,
		Duration: "4 min",
		Icon:     "⛓️",
		Reward:   20,
		KeyPoints: []string{
			"A blockchain records all Bitcoin transactions",
			"Each block contains a list of transactions",
			"Blocks are connected in order, forming a chain",
			"Once recorded, transactions can't be changed or deleted",
			"Everyone can see the blockchain, making it transparent",
		},
		Quiz: []Question{{
			Question:    "What does a blockchain record?",
			Options:     []string{"Video games", "Bitcoin transactions", "Phone numbers", "Homework"},
			Correct:     1,
			Explanation: "The blockchain records all Bitcoin transactions so everyone can see the history!",
		}},
	},
	{
		ID:       "lesson-4",
		Title:    "Saving vs Spending",
		Level:    2,
		Duration: "3 min",
		Icon:     "🏦",
		Reward:   20,
		KeyPoints: []string{
			"Saving means keeping money for later instead of spending it now",
			"Saved sats can grow into bigger goals over time",
			"Spending everything right away means nothing left for big wishes",
			"A good habit is saving part of everything you earn",
		},
		Quiz: []Question{{
			Question:    "What is a good saving habit?",
			Options:     []string{"Spend everything immediately", "Save part of everything you earn", "Never spend anything", "Hide money under the bed"},
			Correct:     1,
			Explanation: "Saving part of everything you earn helps your sats grow toward bigger goals!",
		}},
	},
	{
		ID:       "lesson-5",
		Title:    "Keeping Your Sats Safe",
		Level:    3,
		Duration: "4 min",
		Icon:     "🔐",
		Reward:   25,
		KeyPoints: []string{
			"A wallet is where you keep your Bitcoin",
			"Never share your secret keys or passwords with strangers",
			"Backups protect your sats if you lose your device",
			"If something sounds too good to be true, it probably is",
		},
		Quiz: []Question{{
			Question:    "Who should you share your secret keys with?",
			Options:     []string{"Everyone online", "Your best friend", "Nobody except trusted family", "Anyone who asks nicely"},
			Correct:     2,
			Explanation: "Secret keys stay secret - only trusted family should ever help you with them!",
		}},
	},
	{
		ID:       "lesson-6",
		Title:    "Why Does Money Have Value?",
		Level:    3,
		Duration: "5 min",
		Icon:     "🤔",
		Reward:   30,
		KeyPoints: []string{
			"Money has value because people agree it does",
			"Scarce things tend to be more valuable",
			"There will only ever be 21 million Bitcoin",
			"Working and creating value is how money is earned",
		},
		Quiz: []Question{{
			Question:    "How many Bitcoin will ever exist?",
			Options:     []string{"Unlimited", "21 million", "100 billion", "1 thousand"},
			Correct:     1,
			Explanation: "Bitcoin is scarce - only 21 million will ever exist, which is part of why it has value!",
		}},
	},
}

// Lessons returns a copy of the full catalog.
func Lessons() []Lesson {
	out := make([]Lesson, len(catalog))
	copy(out, catalog)
	return out
}

// ByID returns the lesson with the given id, or nil if unknown.
func ByID(id string) *Lesson {
	for i := range catalog {
		if catalog[i].ID == id {
			l := catalog[i]
			return &l
		}
	}
	return nil
}

// Count returns the number of lessons in the catalog.
func Count() int {
	return len(catalog)
}
