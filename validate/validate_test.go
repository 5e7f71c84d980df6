package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp("", "scenario_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	if _, err := tmpfile.Write([]byte(body)); err != nil {
		t.Fatalf("Failed to write scenario: %v", err)
	}
	tmpfile.Close()
	t.Cleanup(func() { os.Remove(tmpfile.Name()) })
	return tmpfile.Name()
}

func TestValidateScenario_Valid(t *testing.T) {
	path := writeScenario(t, `{
		"command":"start",
		"teams":[{"teamID":1,"name":"A"},{"teamID":2,"name":"B"}],
		"initialState":{
			"width":2,"height":1,"tiles":[["G","D"]],"sectorSize":2,
			"entities":[{"id":100,"type":"thrower","teamID":1,"hp":10,"location":{"x":0,"y":0}}],
			"sectors":[{"topLeft":{"x":0,"y":0},"controllingTeamID":1}]
		}
	}`)

	result := validateScenario(path)
	if !result.Valid {
		t.Errorf("expected valid scenario, got errors: %v", result.Errors)
	}
	if result.File != filepath.Base(path) {
		t.Errorf("File = %q, want %q", result.File, filepath.Base(path))
	}
}

func TestValidateScenario_InvalidJSON(t *testing.T) {
	path := writeScenario(t, `{"command": "start", not valid}`)

	result := validateScenario(path)
	if result.Valid {
		t.Error("expected invalid scenario due to bad JSON")
	}
	if !containsAny(result.Errors, "Invalid JSON") {
		t.Error("expected an 'Invalid JSON' error")
	}
}

func TestValidateScenario_MissingFile(t *testing.T) {
	result := validateScenario("/non/existent/scenario.json")
	if result.Valid {
		t.Error("expected invalid result for missing file")
	}
	if !containsAny(result.Errors, "Failed to read file") {
		t.Error("expected a 'Failed to read file' error")
	}
}

func TestValidateScenario_RowWidthMismatch(t *testing.T) {
	path := writeScenario(t, `{
		"command":"start","teams":[{"teamID":1,"name":"A"}],
		"initialState":{"width":3,"height":1,"tiles":[["G","G"]],"sectorSize":1,"entities":[],"sectors":[]}
	}`)

	result := validateScenario(path)
	if result.Valid {
		t.Error("expected invalid scenario due to row/width mismatch")
	}
	if !containsAny(result.Errors, "want width 3") {
		t.Errorf("expected a row-width error, got: %v", result.Errors)
	}
}

func TestValidateScenario_InvalidTileChar(t *testing.T) {
	path := writeScenario(t, `{
		"command":"start","teams":[{"teamID":1,"name":"A"}],
		"initialState":{"width":1,"height":1,"tiles":[["X"]],"sectorSize":1,"entities":[],"sectors":[]}
	}`)

	result := validateScenario(path)
	if result.Valid {
		t.Error("expected invalid scenario due to an unknown tile character")
	}
	if !containsAny(result.Errors, "invalid tile") {
		t.Errorf("expected an invalid-tile error, got: %v", result.Errors)
	}
}

func TestValidateScenario_SectorSizeDoesNotDivide(t *testing.T) {
	path := writeScenario(t, `{
		"command":"start","teams":[{"teamID":1,"name":"A"}],
		"initialState":{"width":3,"height":1,"tiles":[["G","G","G"]],"sectorSize":2,"entities":[],"sectors":[]}
	}`)

	result := validateScenario(path)
	if result.Valid {
		t.Error("expected invalid scenario since sectorSize does not divide width")
	}
	if !containsAny(result.Errors, "not a multiple of sectorSize") {
		t.Errorf("expected a sectorSize error, got: %v", result.Errors)
	}
}

func TestValidateScenario_EntityOutOfBounds(t *testing.T) {
	path := writeScenario(t, `{
		"command":"start","teams":[{"teamID":1,"name":"A"}],
		"initialState":{
			"width":1,"height":1,"tiles":[["G"]],"sectorSize":1,
			"entities":[{"id":1,"type":"thrower","teamID":1,"hp":10,"location":{"x":5,"y":5}}],
			"sectors":[]
		}
	}`)

	result := validateScenario(path)
	if result.Valid {
		t.Error("expected invalid scenario due to an out-of-bounds entity")
	}
	if !containsAny(result.Errors, "out of bounds") {
		t.Errorf("expected an out-of-bounds error, got: %v", result.Errors)
	}
}

func TestValidateScenario_DuplicateEntityIDAndCollision(t *testing.T) {
	path := writeScenario(t, `{
		"command":"start","teams":[{"teamID":1,"name":"A"}],
		"initialState":{
			"width":2,"height":1,"tiles":[["G","G"]],"sectorSize":1,
			"entities":[
				{"id":1,"type":"thrower","teamID":1,"hp":10,"location":{"x":0,"y":0}},
				{"id":1,"type":"thrower","teamID":1,"hp":10,"location":{"x":0,"y":0}}
			],
			"sectors":[]
		}
	}`)

	result := validateScenario(path)
	if result.Valid {
		t.Error("expected invalid scenario due to duplicate entity ids and a location collision")
	}
	if !containsAny(result.Errors, "duplicate entity id") {
		t.Errorf("expected a duplicate-id error, got: %v", result.Errors)
	}
}

func TestValidateScenario_UnknownTeamID(t *testing.T) {
	path := writeScenario(t, `{
		"command":"start","teams":[{"teamID":1,"name":"A"}],
		"initialState":{
			"width":1,"height":1,"tiles":[["G"]],"sectorSize":1,
			"entities":[{"id":1,"type":"thrower","teamID":9,"hp":10,"location":{"x":0,"y":0}}],
			"sectors":[]
		}
	}`)

	result := validateScenario(path)
	if result.Valid {
		t.Error("expected invalid scenario due to an unknown teamID")
	}
	if !containsAny(result.Errors, "unknown teamID") {
		t.Errorf("expected an unknown-teamID error, got: %v", result.Errors)
	}
}

func containsAny(errs []string, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}
