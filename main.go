package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"ed-rscan/internal/db"
	"ed-rscan/internal/edsm"
	"ed-rscan/internal/engine"
	"ed-rscan/internal/logger"
	"ed-rscan/internal/scan"
)

var version = "dev"

func main() {
	system := flag.String("system", "", "home star system name")
	radius := flag.Int("radius", 0, "sphere scan radius in ly (5-100)")
	jump := flag.Float64("jump", 0, "ship jump range in ly")
	alg := flag.String("alg", "", "route algorithm: auto | exact | annealing | genetic")
	seed := flag.Int64("seed", 0, "RNG seed for heuristic algorithms (0 = random)")
	deep := flag.Bool("deep", false, "refresh per-system survey data before planning")
	history := flag.Int("history", 0, "print the last N saved routes and exit")
	save := flag.Bool("save", true, "persist flag values as the new defaults")
	flag.Parse()

	logger.Banner(version)

	database, err := db.Open()
	if err != nil {
		logger.Error("DB", fmt.Sprintf("Failed to open database: %v", err))
		os.Exit(1)
	}
	defer database.Close()

	if *history > 0 {
		printHistory(database, *history)
		return
	}

	cfg := database.LoadConfig()
	if *system != "" {
		cfg.StartSystem = *system
	}
	if *radius != 0 {
		cfg.Radius = *radius
	}
	if *jump != 0 {
		cfg.JumpRange = *jump
	}
	if *alg != "" {
		cfg.Algorithm = *alg
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *deep {
		cfg.DeepScan = true
	}
	if cfg.StartSystem == "" {
		logger.Error("Scan", "No start system. Pass -system or set one in a previous run.")
		os.Exit(1)
	}
	algorithm, err := engine.ParseAlgorithm(cfg.Algorithm)
	if err != nil {
		logger.Error("Scan", err.Error())
		os.Exit(1)
	}
	if *save {
		if err := database.SaveConfig(cfg); err != nil {
			logger.Warn("DB", fmt.Sprintf("Could not persist config: %v", err))
		}
	}

	dist := engine.Warmup()
	client := edsm.NewClient(database)
	searcher := scan.NewSearcher(client, engine.NewOptimizer(dist))
	worker := scan.NewWorker(searcher)
	defer worker.Close()

	params := scan.Params{
		StartSystem:    cfg.StartSystem,
		Radius:         cfg.Radius,
		JumpRange:      cfg.JumpRange,
		DeepScan:       cfg.DeepScan,
		Algorithm:      algorithm,
		Seed:           cfg.Seed,
		PopulationSize: cfg.PopulationSize,
		Generations:    cfg.Generations,
		CrossoverRate:  cfg.CrossoverRate,
		MutationRate:   cfg.MutationRate,
		InitialTemp:    cfg.InitialTemp,
		CoolingRate:    cfg.CoolingRate,
	}

	type outcome struct {
		route engine.Route
		err   error
	}
	started := time.Now()
	result := make(chan outcome, 1)
	worker.Submit(params,
		func(msg string) { logger.Info("Scan", msg) },
		func(route engine.Route, err error) { result <- outcome{route, err} })

	out := <-result
	if out.err != nil {
		logger.Error("Scan", out.err.Error())
		os.Exit(1)
	}
	if out.route.Covered() == 0 {
		logger.Warn("Scan", "No route: nothing to visit.")
		return
	}

	printRoute(cfg.StartSystem, out.route)

	if id, err := database.SaveRoute(cfg.StartSystem, cfg.Radius, cfg.JumpRange, out.route, time.Since(started)); err != nil {
		logger.Warn("DB", fmt.Sprintf("Could not save route: %v", err))
	} else {
		logger.Success("DB", fmt.Sprintf("Route saved as #%d", id))
	}
}

func printRoute(start string, route engine.Route) {
	logger.Section("Route")
	fmt.Printf("  %2d. %s (start)\n", 0, start)
	for i, sys := range route.Systems {
		leg := 0.0
		if sys.Meta.LegDistance != nil {
			leg = *sys.Meta.LegDistance
		}
		permit := ""
		if sys.Meta.PermitRequired {
			permit = "  [permit]"
		}
		fmt.Printf("  %2d. %-28s %8.2f ly%s\n", i+1, sys.Name, leg, permit)
	}
	logger.Section("Summary")
	logger.Stats("Systems to visit", route.Covered())
	logger.Stats("Total distance", fmt.Sprintf("%.2f ly", route.TotalDistance))
}

func printHistory(database *db.DB, limit int) {
	entries, err := database.RecentRoutes(limit)
	if err != nil {
		logger.Error("DB", fmt.Sprintf("Could not load history: %v", err))
		os.Exit(1)
	}
	logger.Section("Route history")
	if len(entries) == 0 {
		fmt.Println("  (empty)")
		return
	}
	for _, e := range entries {
		fmt.Printf("  #%-4d %s  %-24s %3d systems  %9.2f ly\n",
			e.ID, e.Timestamp, e.StartSystem, e.SystemsFound, e.TotalDistance)
	}
}
