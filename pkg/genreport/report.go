// Package genreport prints a generation run's console summary: a pterm-styled header and
// section panels, then an olekukonko/tablewriter table of class-distribution bounds, adapted
// from the teacher's simulator.Console / cmd/navarch list.go table-rendering idioms.
package genreport

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/pterm/pterm"
)

// ClassCount is one path_a_label bucket's observed count out of the run's total rows.
type ClassCount struct {
	Label string
	Count int64
}

// ValidationSummary is the post-run class-distribution check (§7/§8 property 7): NORMAL
// should land in 93-96%, IMMINENT in 3-5%, CRITICAL in 0.5-2% of all emitted rows.
type ValidationSummary struct {
	TotalRows int64
	Counts    []ClassCount
}

// classBounds gives the expected [low, high] fraction range per path_a_label.
var classBounds = map[string][2]float64{
	"NORMAL":   {0.93, 0.96},
	"IMMINENT": {0.03, 0.05},
	"CRITICAL": {0.005, 0.02},
}

// OutOfBounds reports every label whose observed fraction falls outside its expected range.
func (v ValidationSummary) OutOfBounds() []string {
	var flagged []string
	if v.TotalRows == 0 {
		return flagged
	}
	for _, c := range v.Counts {
		bounds, ok := classBounds[c.Label]
		if !ok {
			continue
		}
		frac := float64(c.Count) / float64(v.TotalRows)
		if frac < bounds[0] || frac > bounds[1] {
			flagged = append(flagged, c.Label)
		}
	}
	return flagged
}

// PrintHeader prints the generation run's styled console header.
func PrintHeader(runID string, trucks, days int, masterSeed int64) {
	pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgDarkGray)).
		WithTextStyle(pterm.NewStyle(pterm.FgLightCyan, pterm.Bold)).
		Println("FLEET SIMULATION")

	fmt.Println()

	panel := pterm.DefaultBox.WithTitle("Run Configuration").WithTitleTopCenter()
	panel.Println(fmt.Sprintf("Run ID: %s\nTrucks: %d\nDays: %d\nMaster seed: %d", runID, trucks, days, masterSeed))
	fmt.Println()
}

// PrintValidationSummary renders the class-distribution table and flags any label whose
// observed fraction falls outside its expected bounds.
func PrintValidationSummary(v ValidationSummary) {
	pterm.DefaultSection.Println("Class Distribution")

	table := tablewriter.NewWriter(os.Stdout)
	table.Append([]string{"Label", "Count", "Fraction", "Expected"})

	outOfBounds := map[string]bool{}
	for _, label := range v.OutOfBounds() {
		outOfBounds[label] = true
	}

	for _, c := range v.Counts {
		frac := 0.0
		if v.TotalRows > 0 {
			frac = float64(c.Count) / float64(v.TotalRows)
		}
		expected := "-"
		if b, ok := classBounds[c.Label]; ok {
			expected = fmt.Sprintf("%.1f%%-%.1f%%", b[0]*100, b[1]*100)
		}
		row := []string{c.Label, fmt.Sprintf("%d", c.Count), fmt.Sprintf("%.2f%%", frac*100), expected}
		table.Append(row)
	}
	table.Render()

	if len(outOfBounds) > 0 {
		pterm.Warning.Printfln("%d class(es) fell outside expected bounds", len(outOfBounds))
	} else {
		pterm.Success.Println("All classes within expected bounds")
	}
}
