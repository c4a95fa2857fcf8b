package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/dieselfleet/simgen/internal/constants"
	"github.com/dieselfleet/simgen/internal/genconfig"
	"github.com/dieselfleet/simgen/internal/simerrors"
	"github.com/dieselfleet/simgen/pkg/fleetsim"
	"github.com/dieselfleet/simgen/pkg/genmetrics"
	"github.com/dieselfleet/simgen/pkg/genreport"
	"github.com/dieselfleet/simgen/pkg/rowio"
)

// Exit codes mirror the generator's error taxonomy (§7): 0 success, 1 ConfigError,
// 2 SchemaError/LogicError, 3 IOError.
const (
	exitOK          = 0
	exitConfigError = 1
	exitSchemaError = 2
	exitIOError     = 3
)

var (
	cfgFile        string
	flagTrucks     int
	flagDays       int
	flagSeed       int64
	flagOutputDir  string
	flagWorkers    int
	flagMetricsAddr string
	logger         *slog.Logger
)

func main() {
	logger = slog.New(NewGeneratorHandler(os.Stdout, slog.LevelInfo))
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fleetsim-gen",
		Short: "Synthetic diesel fleet telemetry generator",
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML run config file")
	root.PersistentFlags().IntVar(&flagTrucks, "trucks", 0, "number of trucks (overrides config)")
	root.PersistentFlags().IntVar(&flagDays, "days", 0, "number of simulation days (overrides config)")
	root.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "master seed (overrides config)")
	root.PersistentFlags().StringVar(&flagOutputDir, "output-dir", "", "output directory (overrides config)")
	root.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "max concurrent trucks (overrides config)")
	root.PersistentFlags().StringVar(&flagMetricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address while generating")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newCheckpointCmd())
	return root
}

func loadEffectiveConfig() (genconfig.Config, error) {
	cfg, err := genconfig.Load(cfgFile)
	if err != nil {
		return genconfig.Config{}, err
	}
	if flagTrucks > 0 {
		cfg.Trucks = flagTrucks
	}
	if flagDays > 0 {
		cfg.Days = flagDays
	}
	if flagSeed != 0 {
		cfg.MasterSeed = flagSeed
	}
	if flagOutputDir != "" {
		cfg.OutputDir = flagOutputDir
	}
	if flagWorkers > 0 {
		cfg.MaxConcurrency = flagWorkers
	}
	return cfg, cfg.Validate()
}

func exitCodeFor(err error) int {
	switch err.(type) {
	case *simerrors.ConfigError:
		return exitConfigError
	case *simerrors.SchemaError, *simerrors.LogicError:
		return exitSchemaError
	case *simerrors.IOError:
		return exitIOError
	default:
		return exitConfigError
	}
}

// newGenerateCmd runs the full fleet generation (§5, §6): builds the fleet, partitions the
// stratified splits, then walks every (truck_id, day_index) work unit, writing CSV rows and
// thermal sidecars as it goes, skipping any truck-day whose output already exists
// (resumability), and writes each truck's maintenance log once all units have finished.
func newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate the full fleet telemetry dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadEffectiveConfig()
			if err != nil {
				return err
			}
			return runGenerate(cfg)
		},
	}
}

func runGenerate(cfg genconfig.Config) error {
	runID := uuid.New().String()
	genreport.PrintHeader(runID, cfg.Trucks, cfg.Days, cfg.MasterSeed)

	reg := prometheus.NewRegistry()
	metrics := genmetrics.New(reg)
	stopMetricsServer := maybeServeMetrics(reg)
	defer stopMetricsServer()

	runDir, err := fleetsim.NewRunDir(cfg.OutputDir)
	if err != nil {
		return simerrors.NewIOError("create run directory", err)
	}

	trucks, err := fleetsim.BuildFleet(fleetsim.FleetConfig{
		TotalTrucks:    cfg.Trucks,
		SimulationDays: cfg.Days,
		MasterSeed:     cfg.MasterSeed,
	})
	if err != nil {
		return err
	}
	logger.Info("fleet built", slog.Int("trucks", len(trucks)))

	splits, err := fleetsim.BuildSplits(trucks, cfg.SplitSeed)
	if err != nil {
		return err
	}
	if err := runDir.SaveSplit("train", splits.Train); err != nil {
		return err
	}
	if err := runDir.SaveSplit("val", splits.Val); err != nil {
		return err
	}
	if err := runDir.SaveSplit("test", splits.Test); err != nil {
		return err
	}
	logger.Info("splits written", slog.Int("train", len(splits.Train)), slog.Int("val", len(splits.Val)), slog.Int("test", len(splits.Test)))

	states := make(map[int]*fleetsim.MaintenanceState, len(trucks))
	thermalCursor := make(map[int][constants.ThermalSensorCount]float64, len(trucks))
	modeCursor := make(map[int]constants.OperatingMode, len(trucks))
	var cursorMu sync.Mutex

	for _, t := range trucks {
		states[t.ID] = &fleetsim.MaintenanceState{
			TruckID:      t.ID,
			ActiveFaults: t.InitialFaults,
			Lifecycle:    fleetsim.StateHealthy,
		}
		thermalCursor[t.ID] = fleetsim.IdleInitial(t)
		modeCursor[t.ID] = constants.ModeIdle
	}

	unitFn := func(unit fleetsim.WorkUnit) error {
		if runDir.RowFileExists(unit.TruckID, unit.DayIndex) {
			return nil
		}

		return generateOneUnit(runDir, trucks, states, thermalCursor, modeCursor, &cursorMu, cfg, metrics, unit)
	}

	start := time.Now()
	errs := fleetsim.RunFleet(trucks, cfg.Days, cfg.MaxConcurrency, logger, unitFn)
	elapsed := time.Since(start)

	for _, t := range trucks {
		if err := runDir.SaveMaintenanceLog(t.ID, states[t.ID].Log); err != nil {
			logger.Warn("failed to save maintenance log", slog.Int("truck_id", t.ID), slog.String("err", err.Error()))
		}
	}

	logger.Info("generation complete", slog.Duration("elapsed", elapsed), slog.Int("failed_units", len(errs)))
	if len(errs) > 0 {
		for _, e := range errs {
			logger.Error("unit failed", slog.String("err", e.Error()))
		}
		return simerrors.NewIOError("generate", fmt.Errorf("%d work units failed", len(errs)))
	}
	return nil
}

// generateOneUnit looks up the truck by ID, runs its day, writes the CSV row file if the
// day produced rows, and advances the per-truck thermal/mode cursors for the next day.
func generateOneUnit(
	runDir *fleetsim.RunDir,
	trucks []*fleetsim.Truck,
	states map[int]*fleetsim.MaintenanceState,
	thermalCursor map[int][constants.ThermalSensorCount]float64,
	modeCursor map[int]constants.OperatingMode,
	cursorMu *sync.Mutex,
	cfg genconfig.Config,
	metrics *genmetrics.Metrics,
	unit fleetsim.WorkUnit,
) error {
	truck := findTruck(trucks, unit.TruckID)
	if truck == nil {
		return simerrors.NewLogicError("C10", fmt.Sprintf("unknown truck id %d", unit.TruckID))
	}

	cursorMu.Lock()
	startThermal := thermalCursor[unit.TruckID]
	startMode := modeCursor[unit.TruckID]
	state := states[unit.TruckID]
	cursorMu.Unlock()

	unitStart := time.Now()
	result, err := fleetsim.RunTruckDay(truck, state, cfg.MasterSeed, unit.DayIndex, startThermal, startMode, cfg.Days)
	if err != nil {
		metrics.ObserveTruckDay(time.Since(unitStart).Seconds(), 0, true)
		return err
	}

	cursorMu.Lock()
	thermalCursor[unit.TruckID] = result.EndThermal
	modeCursor[unit.TruckID] = result.EndMode
	cursorMu.Unlock()

	if !result.Suppressed {
		if err := rowio.WriteTruckDay(runDir.RowFilePath(unit.TruckID, unit.DayIndex), result.Rows); err != nil {
			metrics.ObserveTruckDay(time.Since(unitStart).Seconds(), 0, true)
			return err
		}
		if err := fleetsim.SaveThermalState(runDir.Dir(), fleetsim.ThermalState{
			TruckID:  unit.TruckID,
			DayIndex: unit.DayIndex,
			Temps:    result.EndThermal,
		}); err != nil {
			logger.Warn("failed to save thermal state sidecar", slog.Int("truck_id", unit.TruckID), slog.Int("day", unit.DayIndex))
		}
	}

	metrics.ObserveTruckDay(time.Since(unitStart).Seconds(), len(result.Rows), false)
	return nil
}

func findTruck(trucks []*fleetsim.Truck, id int) *fleetsim.Truck {
	for _, t := range trucks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// newValidateCmd reads a completed run's row files and maintenance logs and prints the
// class-distribution summary (§7/§8 property 7), flagging any label outside its expected
// bounds.
func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate a completed generation run's class distribution",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadEffectiveConfig()
			if err != nil {
				return err
			}
			return runValidate(cfg)
		},
	}
}

func runValidate(cfg genconfig.Config) error {
	runDir, err := fleetsim.NewRunDir(cfg.OutputDir)
	if err != nil {
		return simerrors.NewIOError("open run directory", err)
	}

	counts := map[string]int64{}
	var total int64

	for truckID := 0; truckID < cfg.Trucks; truckID++ {
		for day := 0; day < cfg.Days; day++ {
			path := runDir.RowFilePath(truckID, day)
			records, err := rowio.ReadTruckDay(path)
			if err != nil {
				continue
			}
			if len(records) <= 1 {
				continue
			}
			header := records[0]
			labelCol := -1
			for i, h := range header {
				if h == "path_a_label" {
					labelCol = i
					break
				}
			}
			if labelCol < 0 {
				continue
			}
			for _, rec := range records[1:] {
				counts[rec[labelCol]]++
				total++
			}
		}
	}

	summary := genreport.ValidationSummary{TotalRows: total}
	for _, label := range []string{"NORMAL", "IMMINENT", "CRITICAL"} {
		summary.Counts = append(summary.Counts, genreport.ClassCount{Label: label, Count: counts[label]})
	}
	genreport.PrintValidationSummary(summary)
	return nil
}

// newCheckpointCmd reports how many of the expected (truck_id, day_index) work units have
// already been generated, for resuming a partial run (§5 resumability).
func newCheckpointCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkpoint",
		Short: "Report generation progress for a run directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadEffectiveConfig()
			if err != nil {
				return err
			}
			return runCheckpoint(cfg)
		},
	}
}

func runCheckpoint(cfg genconfig.Config) error {
	runDir, err := fleetsim.NewRunDir(cfg.OutputDir)
	if err != nil {
		return simerrors.NewIOError("open run directory", err)
	}

	total := cfg.Trucks * cfg.Days
	done := 0
	for truckID := 0; truckID < cfg.Trucks; truckID++ {
		for day := 0; day < cfg.Days; day++ {
			if runDir.RowFileExists(truckID, day) {
				done++
			}
		}
	}

	fmt.Printf("%d/%d truck-days generated (%.1f%%) in %s\n", done, total, 100*float64(done)/float64(total), filepath.Clean(cfg.OutputDir))
	return nil
}

func maybeServeMetrics(reg *prometheus.Registry) func() {
	if flagMetricsAddr == "" {
		return func() {}
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: flagMetricsAddr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Warn("metrics server stopped", slog.String("err", err.Error()))
		}
	}()
	logger.Info("metrics server listening", slog.String("addr", flagMetricsAddr))
	return func() { _ = srv.Close() }
}
