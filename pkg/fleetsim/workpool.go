package fleetsim

import (
	"fmt"
	"log/slog"
	"sync"
)

// WorkUnit is one (truck_id, day_index) pair (§5, §9 glossary: work unit). Units for the
// same truck must be processed in increasing day order, since thermal and maintenance state
// flow from one day to the next; units across different trucks have no ordering constraint.
type WorkUnit struct {
	TruckID  int
	DayIndex int
}

// UnitFunc processes one work unit. A non-nil error aborts that unit and the remaining days
// of the same truck; it never aborts units for other trucks.
type UnitFunc func(unit WorkUnit) error

// RunFleet executes one UnitFunc call per (truck_id, day_index) pair across the whole fleet
// (§5, §9 C10): truck-days are serialized per truck (each truck's goroutine walks its days in
// order) but trucks run fully in parallel, bounded by maxConcurrentTrucks. This mirrors the
// teacher's NodeStarter.startInstant semaphore-bounded fan-out, generalized from "one node"
// to "one truck's entire day sequence" as the unit of concurrency.
func RunFleet(trucks []*Truck, simulationDays int, maxConcurrentTrucks int, logger *slog.Logger, fn UnitFunc) []error {
	if maxConcurrentTrucks <= 0 {
		maxConcurrentTrucks = 1
	}

	var wg sync.WaitGroup
	errCh := make(chan error, len(trucks)*simulationDays)
	semaphore := make(chan struct{}, maxConcurrentTrucks)

	for _, truck := range trucks {
		wg.Add(1)
		go func(tr *Truck) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			for day := 0; day < simulationDays; day++ {
				unit := WorkUnit{TruckID: tr.ID, DayIndex: day}
				if err := fn(unit); err != nil {
					errCh <- fmt.Errorf("truck %d day %d: %w", tr.ID, day, err)
					// A failed day aborts the rest of this truck's sequence: later days
					// depend on this day's thermal/maintenance state.
					return
				}
			}
		}(truck)
	}

	wg.Wait()
	close(errCh)

	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}
	if len(errs) > 0 && logger != nil {
		logger.Warn("some truck-days failed to generate", slog.Int("failed", len(errs)), slog.Int("trucks", len(trucks)))
	}
	return errs
}
