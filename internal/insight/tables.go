package insight

import "math/rand"

// Quotes is the rotating motivational set shown on the dashboard.
var Quotes = []string{
	"You have power over your mind - not outside events. Realize this, and you will find strength. — Marcus Aurelius",
	"Waste no more time arguing about what a good man should be. Be one. — Marcus Aurelius",
	"It is not the man who has too little, but the man who craves more, that is poor. — Seneca",
	"If it is not right, do not do it; if it is not true, do not say it. — Marcus Aurelius",
	"We suffer more often in imagination than in reality. — Seneca",
	"How long are you going to wait before you demand the best for yourself? — Epictetus",
	"Don't explain your philosophy. Embody it. — Epictetus",
	"The impediment to action advances action. What stands in the way becomes the way. — Marcus Aurelius",
	"Make use of your health and your free time before they are gone.",
	"Seize five before five: your youth, health, wealth, free time, and life itself.",
	"Leaving what does not concern you is a mark of excellence.",
	"Work as if you will live forever; prepare as if you will leave tomorrow.",
	"A strong believer is better and more beloved than a weak one.",
	"Start your affairs in the morning, for the early hours carry blessing.",
	"Procrastination spends the one currency you cannot earn back.",
	"Deeds are judged by their intentions.",
}

// RandomQuote picks one quote using the provided source, so the
// selection is reproducible in tests.
func RandomQuote(rng *rand.Rand) string {
	return Quotes[rng.Intn(len(Quotes))]
}

// Reward is a purchasable item in the XP shop.
type Reward struct {
	ID    string
	Name  string
	Price int
	Icon  string
}

// ShopRewards is the static shop catalog.
var ShopRewards = []Reward{
	{ID: "game", Name: "One match of your favorite game", Price: 150, Icon: "🎮"},
	{ID: "episode", Name: "One episode of a show", Price: 200, Icon: "📺"},
	{ID: "snack", Name: "A relaxed snack break", Price: 100, Icon: "🍿"},
}

// RewardByID returns the shop reward with the given id, or nil.
func RewardByID(id string) *Reward {
	for i := range ShopRewards {
		if ShopRewards[i].ID == id {
			return &ShopRewards[i]
		}
	}
	return nil
}
