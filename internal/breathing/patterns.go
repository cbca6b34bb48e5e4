package breathing

// Pattern is a named sequence of phase durations in whole seconds,
// repeated for Cycles. Zero-duration hold/pause phases are skipped.
type Pattern struct {
	Slug          string `json:"slug"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	InhaleSeconds int    `json:"inhale_seconds"`
	HoldSeconds   int    `json:"hold_seconds"`
	ExhaleSeconds int    `json:"exhale_seconds"`
	PauseSeconds  int    `json:"pause_seconds"`
	Cycles        int    `json:"cycles"`
}

// DefaultPatterns is the seeded reference set offered by the app.
var DefaultPatterns = []Pattern{
	{
		Slug:          "box-breathing",
		Name:          "Box Breathing",
		Description:   "Equal four-count phases to steady the nervous system.",
		InhaleSeconds: 4,
		HoldSeconds:   4,
		ExhaleSeconds: 4,
		PauseSeconds:  4,
		Cycles:        4,
	},
	{
		Slug:          "relaxing-478",
		Name:          "4-7-8 Relaxing Breath",
		Description:   "Long hold and extended exhale for winding down.",
		InhaleSeconds: 4,
		HoldSeconds:   7,
		ExhaleSeconds: 8,
		Cycles:        4,
	},
	{
		Slug:          "calming-breath",
		Name:          "Calming Breath",
		Description:   "Short hold and a slow exhale to ease anxiety.",
		InhaleSeconds: 4,
		HoldSeconds:   2,
		ExhaleSeconds: 6,
		Cycles:        6,
	},
	{
		Slug:          "energizing-breath",
		Name:          "Energizing Breath",
		Description:   "Deep inhale and quick release to lift energy.",
		InhaleSeconds: 6,
		ExhaleSeconds: 2,
		Cycles:        8,
	},
}

// PatternBySlug looks a pattern up in the default set.
func PatternBySlug(slug string) (Pattern, bool) {
	for _, p := range DefaultPatterns {
		if p.Slug == slug {
			return p, true
		}
	}
	return Pattern{}, false
}
