// Package content holds the fixed challenge, quote and badge lists and picks
// from them at random.
package content

import "github.com/example/growthbot/pkg/models"

// Catalog is the immutable content the tracker draws from
type Catalog struct {
	Challenges []string
	Quotes     []string
	// Badges are kept in declared order; earned badges are reported in this order.
	Badges []models.Badge
}

// DefaultCatalog returns the built-in growth mindset content
func DefaultCatalog() Catalog {
	return Catalog{
		Challenges: []string{
			"Write down 3 things you're grateful for today 📝",
			"Try something new that challenges you 🚀",
			"Practice mindful meditation for 5 minutes 🧘",
			"Learn one new word and use it in conversation 📖",
			"Perform a random act of kindness 💝",
			"Set a small goal and achieve it today 🎯",
			"Read about a new topic for 15 minutes 📚",
			"Practice active listening in a conversation 👂",
			"Write down one fear and one way to overcome it 💪",
			"Learn from a mistake you made recently 🌱",
			"Share knowledge with someone else 🎓",
			"Try solving a puzzle or brain teaser 🧩",
			"Practice positive self-talk 🗣️",
			"Take a small step outside your comfort zone 🦋",
			"Write down a new skill you want to learn 📝",
		},
		Quotes: []string{
			"Growth begins at the end of your comfort zone. 🌱",
			"Every challenge is an opportunity to learn. 📚",
			"The only way to do great work is to love what you do. ❤️",
			"Success is not final, failure is not fatal. 🌟",
			"Your attitude determines your direction. 🧭",
			"Small progress is still progress. 🎯",
			"Believe you can and you're halfway there. ✨",
			"The future depends on what you do today. 🌅",
			"Dream big, start small. 💫",
			"Fall seven times, stand up eight. 💪",
		},
		Badges: []models.Badge{
			{Threshold: 5, Label: "Growth Seedling 🌱"},
			{Threshold: 10, Label: "Mindset Explorer 🗺️"},
			{Threshold: 15, Label: "Challenge Champion 🏆"},
			{Threshold: 20, Label: "Growth Master 👑"},
			{Threshold: 30, Label: "Mindset Warrior ⚔️"},
		},
	}
}

// Motto is shown at the bottom of every full dashboard
const Motto = "🌟 Remember: Every small step counts towards your growth! 🌟"
