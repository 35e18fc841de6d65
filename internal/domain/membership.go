package domain

// Tier is one of the three static membership levels.
type Tier string

const (
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"

	// DefaultTier is applied when the register page is opened without a
	// ?membership= query parameter.
	DefaultTier = TierGold
)

// Monthly prices in USD. The price is a property of the tier, it is never
// stored on the profile beyond the tier name.
var tierPrices = map[Tier]float64{
	TierSilver:   49.99,
	TierGold:     99.99,
	TierPlatinum: 149.99,
}

var tierFeatures = map[Tier][]string{
	TierSilver: {
		"Basic gym access",
		"Locker room access",
		"1 group class per week",
	},
	TierGold: {
		"24/7 gym access",
		"Locker room access",
		"Unlimited group classes",
		"1 personal training session/month",
	},
	TierPlatinum: {
		"24/7 gym access",
		"VIP locker room",
		"Unlimited group classes",
		"Weekly personal training",
		"Nutrition consultation",
	},
}

// ParseTier maps the raw query/form value to a Tier. An empty value falls
// back to DefaultTier; anything outside the closed enumeration is rejected.
func ParseTier(raw string) (Tier, bool) {
	if raw == "" {
		return DefaultTier, true
	}
	t := Tier(raw)
	if _, ok := tierPrices[t]; !ok {
		return "", false
	}
	return t, true
}

func (t Tier) Price() float64 {
	return tierPrices[t]
}

func (t Tier) Features() []string {
	return tierFeatures[t]
}

// Tiers returns the catalog in display order for the memberships page.
func Tiers() []Tier {
	return []Tier{TierSilver, TierGold, TierPlatinum}
}
