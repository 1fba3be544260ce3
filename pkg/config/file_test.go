package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charlie0129/zcal/pkg/calibration"
	"github.com/charlie0129/zcal/pkg/utils/ptr"
)

func TestLoadMissingFile(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load() of a missing file should not fail: %v", err)
	}
	if p == nil {
		t.Fatal("Load() of a missing file should yield an empty profile")
	}
	if p.Rows != nil {
		t.Errorf("empty profile should not set rows, got %d", *p.Rows)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load() of an empty file should not fail: %v", err)
	}
	if p == nil || p.BedWidth != nil {
		t.Errorf("empty file should yield an empty profile, got %+v", p)
	}
}

func TestLoadBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{rows:"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load() of malformed JSON should fail")
	}
}

func TestApplyOverrides(t *testing.T) {
	p := &Profile{
		Rows:       ptr.To(5),
		BedWidth:   ptr.To(220.0),
		ZStart:     ptr.To(-0.2),
		NozzleTemp: ptr.To(205),
		Sweep:      ptr.To(calibration.SweepTemperature),
	}

	base := calibration.Default()
	got := p.Apply(base)

	if got.Rows != 5 {
		t.Errorf("Rows = %d, want 5", got.Rows)
	}
	if got.BedWidth != 220 {
		t.Errorf("BedWidth = %g, want 220", got.BedWidth)
	}
	if got.ZStart != -0.2 {
		t.Errorf("ZStart = %g, want -0.2", got.ZStart)
	}
	if got.NozzleTemp != 205 {
		t.Errorf("NozzleTemp = %d, want 205", got.NozzleTemp)
	}
	if got.Sweep != calibration.SweepTemperature {
		t.Errorf("Sweep = %q, want %q", got.Sweep, calibration.SweepTemperature)
	}

	// Untouched fields keep their defaults.
	if got.Columns != base.Columns {
		t.Errorf("Columns = %d, want untouched %d", got.Columns, base.Columns)
	}
	if got.BedTemp != base.BedTemp {
		t.Errorf("BedTemp = %d, want untouched %d", got.BedTemp, base.BedTemp)
	}
}

func TestApplyNilProfile(t *testing.T) {
	var p *Profile
	base := calibration.Default()
	if got := p.Apply(base); got != base {
		t.Errorf("nil profile should leave the config untouched")
	}
}

func TestOutputPath(t *testing.T) {
	var p *Profile
	if got := p.OutputPath("a.gcode"); got != "a.gcode" {
		t.Errorf("OutputPath() = %q, want fallback", got)
	}

	p = &Profile{Output: ptr.To("custom.gcode")}
	if got := p.OutputPath("a.gcode"); got != "custom.gcode" {
		t.Errorf("OutputPath() = %q, want custom.gcode", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")

	cfg := calibration.Default()
	cfg.Rows = 6
	cfg.ZEnd = 0.05
	if err := FromConfig(cfg, "mine.gcode").Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	got := p.Apply(calibration.Default())
	if got != cfg {
		t.Errorf("round-tripped config = %+v, want %+v", got, cfg)
	}
	if out := p.OutputPath(""); out != "mine.gcode" {
		t.Errorf("OutputPath() = %q, want mine.gcode", out)
	}
}
