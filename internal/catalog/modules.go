package catalog

// Default returns the production module track. Content bodies live in the
// frontend; the backend carries enough presentation metadata for listings.
func Default() *Catalog {
	return New([]Module{
		{
			ID:       "mod_blueprint",
			Slug:     "the-blueprint",
			Order:    0,
			Title:    "The Blueprint",
			Subtitle: "How skill actually forms, and why most practice fails",
			Icon:     "map",
			VideoID:  "px-blueprint-01",
		},
		{
			ID:       "mod_eco_revolution",
			Slug:     "the-ecological-revolution",
			Order:    1,
			Title:    "The Ecological Revolution",
			Subtitle: "Perception and action are one system",
			Icon:     "leaf",
			VideoID:  "px-eco-02",
		},
		{
			ID:       "mod_affordances",
			Slug:     "seeing-affordances",
			Order:    2,
			Title:    "Seeing Affordances",
			Subtitle: "Training your eye for opportunities to act",
			Icon:     "eye",
			VideoID:  "px-afford-03",
		},
		{
			ID:       "mod_constraints",
			Slug:     "designing-constraints",
			Order:    3,
			Title:    "Designing Constraints",
			Subtitle: "Shape the environment, not the movement",
			Icon:     "frame",
			VideoID:  "px-constraints-04",
		},
		{
			ID:       "mod_repetition",
			Slug:     "repetition-without-repetition",
			Order:    4,
			Title:    "Repetition Without Repetition",
			Subtitle: "Variability as the engine of adaptability",
			Icon:     "refresh",
			VideoID:  "px-variability-05",
		},
		{
			ID:       "mod_perf_loop",
			Slug:     "the-performance-loop",
			Order:    5,
			Title:    "The Performance Loop",
			Subtitle: "Closing the gap between practice and competition",
			Icon:     "loop",
			VideoID:  "px-loop-06",
		},
		{
			ID:       "mod_attractor",
			Slug:     "the-attractor-state",
			Order:    6,
			Title:    "The Attractor State",
			Subtitle: "Making the new skill your stable default",
			Icon:     "magnet",
			VideoID:  "px-attractor-07",
		},
	})
}
