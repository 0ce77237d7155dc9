package models

// Options offered by the pilot survey form
var (
	CampusLocations = []string{
		"Bird Library",
		"Hinds Hall",
		"Crouse Hall",
		"Whitman",
		"Maxwell",
		"Life Sciences",
		"Dome",
		"Link Hall",
		"Schine Center",
	}

	Wearables = []string{"None", "Fitbit", "Apple Watch", "Apple Health", "Google Fit"}

	Causes = []string{
		"Late coding",
		"Greek/social events",
		"Design studio deadlines",
		"Labs/clinicals",
		"Work shifts",
		"Gaming",
		"Commuting",
		"Sports practice",
	}
)

// DefaultPilotPreferences returns the survey answers used before the user saves any
func DefaultPilotPreferences() PilotPreferences {
	return PilotPreferences{
		CampusLocation: "Bird Library",
		Causes:         []string{},
		Wearable:       "None",
		ConsentShare:   false,
	}
}
