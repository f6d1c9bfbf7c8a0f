package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/TheBitDrifter/depot"
	"github.com/TheBitDrifter/depot/internal/sim"
)

func main() {
	path := flag.String("scenario", "scenario.yaml", "path to the YAML scenario")
	flag.Parse()

	if err := run(*path); err != nil {
		fmt.Fprintln(os.Stderr, "depotsim:", err)
		os.Exit(1)
	}
}

func run(path string) error {
	scenario, err := sim.LoadScenarioFile(path)
	if err != nil {
		return err
	}

	logger, err := sim.NewLogger(scenario.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()
	depot.Config.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	simulation, err := sim.New(scenario, logger)
	if err != nil {
		return err
	}
	report, err := simulation.Run(ctx)
	if err != nil {
		logger.Error("simulation stopped", zap.Error(err), zap.Int("passes", report.Passes))
		return err
	}

	fmt.Printf("run %s: %d passes, %d entities remaining\n", report.RunID, report.Passes, report.Entities)
	return nil
}
