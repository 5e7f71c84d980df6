package main

import (
	"os"
	"testing"
)

func writeTestScenario(t *testing.T, body string) string {
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

func TestAnalyzeScenario_ValidFile(t *testing.T) {
	path := writeTestScenario(t, `{
		"command":"start",
		"teams":[{"teamID":1,"name":"A"},{"teamID":2,"name":"B"}],
		"initialState":{
			"width":4,"height":1,"tiles":[["G","G","G","G"]],"sectorSize":4,
			"entities":[
				{"id":1,"type":"thrower","teamID":1,"hp":10,"location":{"x":0,"y":0}},
				{"id":2,"type":"thrower","teamID":2,"hp":10,"location":{"x":1,"y":0}},
				{"id":3,"type":"hedge","teamID":0,"hp":1,"location":{"x":3,"y":0}}
			],
			"sectors":[{"topLeft":{"x":0,"y":0},"controllingTeamID":1}]
		}
	}`)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("analyzeScenario panicked: %v", r)
		}
	}()
	analyzeScenario(path)
}

func TestAnalyzeScenario_InvalidFile(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("analyzeScenario panicked with a missing file: %v", r)
		}
	}()
	analyzeScenario("/non/existent/scenario.json")
}

func TestAnalyzeScenario_InvalidJSON(t *testing.T) {
	path := writeTestScenario(t, `{"command": "start", not valid}`)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("analyzeScenario panicked with invalid JSON: %v", r)
		}
	}()
	analyzeScenario(path)
}

func TestAnalyzeScenario_NoContestedFrontline(t *testing.T) {
	path := writeTestScenario(t, `{
		"command":"start",
		"teams":[{"teamID":1,"name":"A"},{"teamID":2,"name":"B"}],
		"initialState":{
			"width":9,"height":1,"tiles":[["G","G","G","G","G","G","G","G","G"]],"sectorSize":9,
			"entities":[
				{"id":1,"type":"thrower","teamID":1,"hp":10,"location":{"x":0,"y":0}},
				{"id":2,"type":"thrower","teamID":2,"hp":10,"location":{"x":8,"y":0}}
			],
			"sectors":[]
		}
	}`)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("analyzeScenario panicked: %v", r)
		}
	}()
	analyzeScenario(path)
}
