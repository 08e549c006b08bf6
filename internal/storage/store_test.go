package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mseri/owl-ode/ode"
)

func sampleTrajectory() *ode.Trajectory {
	return &ode.Trajectory{
		Times: []float64{0, 0.1, 0.2},
		States: []ode.State{
			{1, 0},
			{0.995, -0.0998},
			{0.98, -0.1986},
		},
	}
}

func TestSaveAndLoadTrajectory(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	traj := sampleTrajectory()
	runID, err := s.Save(RunMetadata{Model: "harmonic", Stepper: "rk4", Dt: 0.1, Duration: 0.2}, traj)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("empty run ID")
	}

	loaded, err := s.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("LoadTrajectory failed: %v", err)
	}
	if loaded.Len() != traj.Len() {
		t.Fatalf("loaded %d points, want %d", loaded.Len(), traj.Len())
	}
	for i := range traj.Times {
		if loaded.Times[i] != traj.Times[i] {
			t.Errorf("time %d = %v, want %v", i, loaded.Times[i], traj.Times[i])
		}
		for j := range traj.States[i] {
			if loaded.States[i][j] != traj.States[i][j] {
				t.Errorf("state %d[%d] = %v, want %v", i, j, loaded.States[i][j], traj.States[i][j])
			}
		}
	}
}

func TestListSortedByTimestamp(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}

	traj := sampleTrajectory()
	first, err := s.Save(RunMetadata{Model: "decay"}, traj)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Save(RunMetadata{Model: "pendulum"}, traj)
	if err != nil {
		t.Fatal(err)
	}

	runs, err := s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("listed %d runs, want 2", len(runs))
	}
	if runs[0].ID != first || runs[1].ID != second {
		t.Errorf("runs out of order: %s, %s", runs[0].ID, runs[1].ID)
	}
	if runs[0].Points != traj.Len() {
		t.Errorf("points = %d, want %d", runs[0].Points, traj.Len())
	}
}

func TestListEmptyBaseDir(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "never-created"))
	runs, err := s.List()
	if err != nil {
		t.Fatalf("List on missing dir failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestLoadTrajectoryUnknownRun(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.LoadTrajectory("missing_123"); err == nil {
		t.Error("expected error for unknown run")
	}
}

func TestExportJSON(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}

	traj := sampleTrajectory()
	runID, err := s.Save(RunMetadata{Model: "harmonic", Label: "export test"}, traj)
	if err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "run.json")
	if err := s.Export(runID, out); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var doc ExportData
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if doc.Model != "harmonic" || doc.Label != "export test" {
		t.Errorf("metadata did not survive export: %+v", doc.RunMetadata)
	}
	if len(doc.Times) != traj.Len() || len(doc.States) != traj.Len() {
		t.Errorf("export has %d/%d rows, want %d", len(doc.Times), len(doc.States), traj.Len())
	}
	if doc.States[0][0] != 1 {
		t.Errorf("first state = %v, want 1", doc.States[0][0])
	}
}
