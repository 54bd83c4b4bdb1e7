package config

// Config holds application settings (in-memory representation).
// Persistence is handled by the internal/db package.
type Config struct {
	StartSystem string  `json:"start_system"`
	Radius      int     `json:"radius"`     // sphere query radius in ly
	JumpRange   float64 `json:"jump_range"` // ship jump range in ly
	Algorithm   string  `json:"algorithm"`  // auto | exact | genetic | annealing
	DeepScan    bool    `json:"deep_scan"`  // refresh per-system body counts before planning
	Seed        int64   `json:"seed"`       // 0 = real entropy

	// Heuristic tunables. Zero values fall back to engine defaults.
	PopulationSize int     `json:"population_size"`
	Generations    int     `json:"generations"`
	CrossoverRate  float64 `json:"crossover_rate"`
	MutationRate   float64 `json:"mutation_rate"`
	InitialTemp    float64 `json:"initial_temp"`
	CoolingRate    float64 `json:"cooling_rate"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Radius:         50,
		JumpRange:      50,
		Algorithm:      "auto",
		PopulationSize: 100,
		Generations:    100,
		CrossoverRate:  0.4,
		MutationRate:   0.05,
		InitialTemp:    1000,
		CoolingRate:    0.995,
	}
}
