package db

import (
	"strconv"

	"ed-rscan/internal/config"
)

// LoadConfig reads config from SQLite. If empty, returns defaults.
func (d *DB) LoadConfig() *config.Config {
	cfg := config.Default()

	rows, err := d.sql.Query("SELECT key, value FROM config")
	if err != nil {
		return cfg
	}
	defer rows.Close()

	m := make(map[string]string)
	for rows.Next() {
		var k, v string
		rows.Scan(&k, &v)
		m[k] = v
	}

	if len(m) == 0 {
		return cfg
	}

	if v, ok := m["start_system"]; ok {
		cfg.StartSystem = v
	}
	if v, ok := m["radius"]; ok {
		cfg.Radius, _ = strconv.Atoi(v)
	}
	if v, ok := m["jump_range"]; ok {
		cfg.JumpRange, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := m["algorithm"]; ok {
		cfg.Algorithm = v
	}
	if v, ok := m["deep_scan"]; ok {
		cfg.DeepScan, _ = strconv.ParseBool(v)
	}
	if v, ok := m["seed"]; ok {
		cfg.Seed, _ = strconv.ParseInt(v, 10, 64)
	}
	if v, ok := m["population_size"]; ok {
		cfg.PopulationSize, _ = strconv.Atoi(v)
	}
	if v, ok := m["generations"]; ok {
		cfg.Generations, _ = strconv.Atoi(v)
	}
	if v, ok := m["crossover_rate"]; ok {
		cfg.CrossoverRate, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := m["mutation_rate"]; ok {
		cfg.MutationRate, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := m["initial_temp"]; ok {
		cfg.InitialTemp, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := m["cooling_rate"]; ok {
		cfg.CoolingRate, _ = strconv.ParseFloat(v, 64)
	}

	return cfg
}

// SaveConfig persists the config as key/value rows.
func (d *DB) SaveConfig(cfg *config.Config) error {
	kv := map[string]string{
		"start_system":    cfg.StartSystem,
		"radius":          strconv.Itoa(cfg.Radius),
		"jump_range":      strconv.FormatFloat(cfg.JumpRange, 'f', -1, 64),
		"algorithm":       cfg.Algorithm,
		"deep_scan":       strconv.FormatBool(cfg.DeepScan),
		"seed":            strconv.FormatInt(cfg.Seed, 10),
		"population_size": strconv.Itoa(cfg.PopulationSize),
		"generations":     strconv.Itoa(cfg.Generations),
		"crossover_rate":  strconv.FormatFloat(cfg.CrossoverRate, 'f', -1, 64),
		"mutation_rate":   strconv.FormatFloat(cfg.MutationRate, 'f', -1, 64),
		"initial_temp":    strconv.FormatFloat(cfg.InitialTemp, 'f', -1, 64),
		"cooling_rate":    strconv.FormatFloat(cfg.CoolingRate, 'f', -1, 64),
	}

	tx, err := d.sql.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for k, v := range kv {
		if _, err := tx.Exec(
			"INSERT INTO config (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
			k, v,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}
