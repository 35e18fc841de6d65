package domain

import "strings"

// Program is one entry of the static fitness program catalog shown on the
// member dashboard. There is no capacity or scheduling-conflict model on a
// program; bookings reference it by name only.
type Program struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageKey    string `json:"-"` // object key in the media bucket
}

var programCatalog = []Program{
	{
		Name:        "Yoga",
		Description: "Improve flexibility, balance and calm with guided yoga sessions.",
		ImageKey:    "programs/yoga.webp",
	},
	{
		Name:        "Mindfulness",
		Description: "Breathing and meditation practice to recover body and mind.",
		ImageKey:    "programs/mindfulness.webp",
	},
	{
		Name:        "Strength Training",
		Description: "Build muscle and power with free weights and machines.",
		ImageKey:    "programs/strength.webp",
	},
	{
		Name:        "Cardio",
		Description: "High energy conditioning to burn calories and boost endurance.",
		ImageKey:    "programs/cardio.webp",
	},
}

// Programs returns the full catalog.
func Programs() []Program {
	return programCatalog
}

// ProgramByName matches case-insensitively; the booking keeps whatever
// casing the client submitted.
func ProgramByName(name string) (Program, bool) {
	for _, p := range programCatalog {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Program{}, false
}
