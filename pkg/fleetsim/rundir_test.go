package fleetsim

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewRunDirCreatesLayout(t *testing.T) {
	base := t.TempDir()
	rd, err := NewRunDir(filepath.Join(base, "run1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, sub := range []string{"rows", "thermal_state", "metadata"} {
		if _, err := os.Stat(filepath.Join(rd.Dir(), sub)); err != nil {
			t.Fatalf("expected %s subdirectory to exist: %v", sub, err)
		}
	}
}

func TestNewRunDirEmptyBaseDirErrors(t *testing.T) {
	if _, err := NewRunDir(""); err == nil {
		t.Fatalf("expected error for empty base dir")
	}
}

func TestRowFileExistsFalseInitially(t *testing.T) {
	rd, err := NewRunDir(filepath.Join(t.TempDir(), "run2"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rd.RowFileExists(1, 0) {
		t.Fatalf("expected no row file to exist yet")
	}
}

func TestSaveMaintenanceLogAndSaveSplitRoundTrip(t *testing.T) {
	rd, err := NewRunDir(filepath.Join(t.TempDir(), "run3"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events := []MaintenanceEvent{{FaultRepaired: "FM-01", Outcome: "REPAIR"}}
	if err := rd.SaveMaintenanceLog(5, events); err != nil {
		t.Fatalf("SaveMaintenanceLog failed: %v", err)
	}
	if _, err := os.Stat(rd.MaintenanceLogPath(5)); err != nil {
		t.Fatalf("expected maintenance log file to exist: %v", err)
	}

	if err := rd.SaveSplit("train", []int{1, 2, 3}); err != nil {
		t.Fatalf("SaveSplit failed: %v", err)
	}
	if _, err := os.Stat(rd.SplitFilePath("train")); err != nil {
		t.Fatalf("expected split file to exist: %v", err)
	}
}
