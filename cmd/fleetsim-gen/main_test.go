package main

import (
	"errors"
	"testing"

	"github.com/dieselfleet/simgen/internal/simerrors"
)

func TestExitCodeForTaxonomy(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"config error", simerrors.NewConfigError("trucks", "must be positive"), exitConfigError},
		{"schema error", simerrors.NewSchemaError(1, 2, "bad width"), exitSchemaError},
		{"logic error", simerrors.NewLogicError("I1", "severity decreased"), exitSchemaError},
		{"io error", simerrors.NewIOError("write", errors.New("disk full")), exitIOError},
		{"unknown error", errors.New("boom"), exitConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFindTruckMissingReturnsNil(t *testing.T) {
	if got := findTruck(nil, 5); got != nil {
		t.Fatalf("expected nil for empty fleet, got %v", got)
	}
}
