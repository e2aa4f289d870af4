package runner

import "github.com/vovakirdan/reef-runner/internal/registry"

// ModeReef is the default mode ID.
const ModeReef = "reef"

func init() {
	registry.Register(registry.Mode{
		ID:    ModeReef,
		Title: "Reef Run",
		Scenes: []string{
			"BIKINI_BOTTOM",
			"KELP_FOREST",
			"GOO_LAGOON",
			"JELLYFISH_FIELDS",
			"CHUM_BUCKET",
			"DEEP_OCEAN",
			"GLOVE_WORLD",
			"KRUSTY_KRAB",
			"FLYING_DUTCHMAN",
			"BOATING_SCHOOL",
		},
	})
	registry.Register(registry.Mode{
		ID:    "abyss",
		Title: "Abyss Dive",
		Scenes: []string{
			"DEEP_OCEAN",
			"CHUM_BUCKET",
			"FLYING_DUTCHMAN",
			"KELP_FOREST",
		},
	})
}
