package config

import (
	"testing"
)

func TestDefault_Values(t *testing.T) {
	c := Default()
	if c == nil {
		t.Fatal("Default() returned nil")
	}
	if c.Radius != 50 {
		t.Errorf("Radius = %v, want 50", c.Radius)
	}
	if c.JumpRange != 50 {
		t.Errorf("JumpRange = %v, want 50", c.JumpRange)
	}
	if c.Algorithm != "auto" {
		t.Errorf("Algorithm = %q, want auto", c.Algorithm)
	}
	if c.DeepScan {
		t.Error("DeepScan = true, want false")
	}
	if c.Seed != 0 {
		t.Errorf("Seed = %v, want 0", c.Seed)
	}
	if c.PopulationSize != 100 || c.Generations != 100 {
		t.Errorf("genetic sizing = %d/%d, want 100/100", c.PopulationSize, c.Generations)
	}
	if c.CrossoverRate != 0.4 || c.MutationRate != 0.05 {
		t.Errorf("genetic rates = %v/%v, want 0.4/0.05", c.CrossoverRate, c.MutationRate)
	}
	if c.InitialTemp != 1000 || c.CoolingRate != 0.995 {
		t.Errorf("annealing schedule = %v/%v, want 1000/0.995", c.InitialTemp, c.CoolingRate)
	}
}
