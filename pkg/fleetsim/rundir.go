package fleetsim

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RunDir manages the output-directory structure for one generation run (§6.4), adapted from
// the teacher's timestamped-run-directory idiom: instead of per-node logs, it lays out the
// per-truck thermal-state and maintenance-log sidecars, the row output directory, and the
// stratified truck-id split files, all beneath one base directory.
type RunDir struct {
	baseDir string
}

// NewRunDir creates (or reuses) the output directory layout under baseDir. Unlike the
// teacher's RunDir, the generator's baseDir is not auto-timestamped: resumable generation
// runs (§5 "skip if exists") depend on reusing the exact same directory across invocations.
func NewRunDir(baseDir string) (*RunDir, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("output directory must not be empty")
	}
	for _, sub := range []string{"rows", "thermal_state", "metadata"} {
		if err := os.MkdirAll(filepath.Join(baseDir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", sub, err)
		}
	}
	return &RunDir{baseDir: baseDir}, nil
}

// Dir returns the run's base directory.
func (rd *RunDir) Dir() string { return rd.baseDir }

// RowFilePath returns the path for one truck-day's row output file (§6.4).
func (rd *RunDir) RowFilePath(truckID, dayIndex int) string {
	return filepath.Join(rd.baseDir, "rows", fmt.Sprintf("truck_%d", truckID), fmt.Sprintf("day_%d.csv", dayIndex))
}

// RowFileExists reports whether a truck-day's output already exists, for the §5 "skip if
// exists" resumability rule.
func (rd *RunDir) RowFileExists(truckID, dayIndex int) bool {
	_, err := os.Stat(rd.RowFilePath(truckID, dayIndex))
	return err == nil
}

// MaintenanceLogPath returns the path for a truck's cumulative maintenance event log (§6.4).
func (rd *RunDir) MaintenanceLogPath(truckID int) string {
	return filepath.Join(rd.baseDir, "metadata", fmt.Sprintf("truck_%d", truckID), "maintenance_log.json")
}

// SaveMaintenanceLog persists a truck's maintenance event log via atomic temp-file + rename.
func (rd *RunDir) SaveMaintenanceLog(truckID int, events []MaintenanceEvent) error {
	path := rd.MaintenanceLogPath(truckID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir maintenance log dir: %w", err)
	}
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal maintenance log: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write maintenance log: %w", err)
	}
	return os.Rename(tmp, path)
}

// SplitFilePath returns the path for one of the three stratified truck-id split files (§6.4).
func (rd *RunDir) SplitFilePath(name string) string {
	return filepath.Join(rd.baseDir, "metadata", fmt.Sprintf("%s_trucks.txt", name))
}

// SaveSplit writes a split's truck IDs, one per line, via atomic temp-file + rename.
func (rd *RunDir) SaveSplit(name string, truckIDs []int) error {
	var b strings.Builder
	for _, id := range truckIDs {
		fmt.Fprintf(&b, "%d\n", id)
	}
	path := rd.SplitFilePath(name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write split %s: %w", name, err)
	}
	return os.Rename(tmp, path)
}
