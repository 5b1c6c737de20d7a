// Package main runs one complete zoo day on the console: a fixed
// dataset in, one rendered line per scheduling event out, a final report
// line, exit 0. It only handles wiring; NO business logic belongs here.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rmbenavides/ZooDia/server/internal/dataset"
	"github.com/rmbenavides/ZooDia/server/internal/engine"
	"github.com/rmbenavides/ZooDia/server/internal/events"
	"github.com/rmbenavides/ZooDia/server/internal/platform/logger"
)

func main() {
	datasetPath := flag.String("dataset", "", "YAML dataset file (empty = embedded default)")
	seed := flag.Int64("seed", 0, "random seed (0 = time-based)")
	flag.Parse()

	appLogger := logger.NewLogger()

	ds := dataset.Default()
	if *datasetPath != "" {
		loaded, err := dataset.Load(*datasetPath)
		if err != nil {
			appLogger.Error("failed to load dataset: %v", err)
			os.Exit(1)
		}
		ds = loaded
	}

	animals, workers, visitors, err := ds.Entities()
	if err != nil {
		appLogger.Error("invalid dataset: %v", err)
		os.Exit(1)
	}

	cfg := engine.Config{Seed: *seed}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	eventLog := events.NewEventLog(nil)
	sim, err := engine.NewSimulation(cfg, animals, workers, visitors, eventLog, appLogger)
	if err != nil {
		appLogger.Error("failed to initialize simulation: %v", err)
		os.Exit(1)
	}
	defer sim.Close()

	appLogger.Info("zoo day starting: %d animals, %d workers, %d visitors, seed=%d",
		len(sim.Registry().Animals()), len(workers), len(visitors), cfg.Seed)

	report := sim.Run()

	fmt.Println("----------------------------------------")
	for _, line := range eventLog.RenderAll() {
		fmt.Println(line)
	}
	fmt.Println("----------------------------------------")
	fmt.Printf("TOTAL EARNINGS: %d (tours=%d, skipped=%d)\n",
		report.TotalEarnings, report.ToursAdmitted, report.ToursSkipped)
}
