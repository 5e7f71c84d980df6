// Command validate lints battlecode scenario fixture files: the same
// start/keyframe JSON shape the server sends over the wire (spec.md
// section 6), saved to disk so map authors and bot writers can catch
// malformed fixtures before handing them to battletest or a live match.
// It checks:
//   - JSON structure and required fields
//   - grid rectangularity and allowed tile characters (G, D)
//   - sectorSize divides width and height evenly (a dimension smaller
//     than sectorSize is accepted, since one sector covers it)
//   - every entity sits in bounds, with a unique id
//   - no two non-held entities occupy the same cell
//   - every entity's teamID (if any) appears in the teams roster
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/battlecode-hq/botclient/protocol"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateScenario loads and validates a single scenario JSON file shaped
// like a protocol start frame.
func validateScenario(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var frame protocol.StartFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}
	state := frame.InitialState

	if state.Width <= 0 || state.Height <= 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("width/height must be positive, got %dx%d", state.Width, state.Height))
	}
	if len(state.Tiles) != int(state.Height) {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("tiles has %d rows, want height %d", len(state.Tiles), state.Height))
	}
	for y, row := range state.Tiles {
		if len(row) != int(state.Width) {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("row %d has %d cells, want width %d", y, len(row), state.Width))
		}
		for x, cell := range row {
			if cell != "G" && cell != "D" {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("invalid tile %q at (%d,%d), want G or D", cell, x, y))
			}
		}
	}

	if state.SectorSize <= 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("sectorSize must be positive, got %d", state.SectorSize))
	} else {
		// A dimension smaller than sectorSize is covered by a single sector.
		if state.Width > state.SectorSize && state.Width%state.SectorSize != 0 {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("width %d is not a multiple of sectorSize %d", state.Width, state.SectorSize))
		}
		if state.Height > state.SectorSize && state.Height%state.SectorSize != 0 {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("height %d is not a multiple of sectorSize %d", state.Height, state.SectorSize))
		}
	}

	teamIDs := map[int32]bool{0: true} // neutral
	for _, team := range frame.Teams {
		teamIDs[team.TeamID] = true
	}

	seenID := map[int64]bool{}
	occupied := map[[2]int32]int64{}
	for _, e := range state.Entities {
		if seenID[e.ID] {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("duplicate entity id %d", e.ID))
		}
		seenID[e.ID] = true

		if e.Location.X < 0 || e.Location.X >= state.Width || e.Location.Y < 0 || e.Location.Y >= state.Height {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("entity %d at (%d,%d) is out of bounds", e.ID, e.Location.X, e.Location.Y))
		}

		if e.TeamID != nil && !teamIDs[*e.TeamID] {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("entity %d references unknown teamID %d", e.ID, *e.TeamID))
		}

		if e.HeldBy == nil {
			key := [2]int32{e.Location.X, e.Location.Y}
			if other, exists := occupied[key]; exists {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("entities %d and %d both occupy (%d,%d)", other, e.ID, e.Location.X, e.Location.Y))
			}
			occupied[key] = e.ID
		}
	}

	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d, sectorSize %d", state.Width, state.Height, state.SectorSize))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Teams: %d", len(frame.Teams)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Entities: %d", len(state.Entities)))
	}

	return result
}

// main scans ./scenarios for *.json files and validates each one, printing
// a concise report and exiting with non-zero status if any are invalid.
func main() {
	scenarioDir := "scenarios"
	files, err := filepath.Glob(filepath.Join(scenarioDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding scenario files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateScenario(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, e := range result.Errors {
				if !strings.HasPrefix(e, "✓") {
					fmt.Println("  ❌ " + e)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All scenarios are valid!")
	} else {
		fmt.Println("❌ Some scenarios have errors")
		os.Exit(1)
	}
}
