package prefabs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedGameSpecIsValid(t *testing.T) {
	data, err := TuningFS.ReadFile(GameFile)
	if err != nil {
		t.Fatalf("read embedded: %v", err)
	}
	spec, err := ParseGameSpec(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(spec.Rings) == 0 || len(spec.Weapon.Stages) == 0 {
		t.Fatalf("expected rings and weapon stages, got %+v", spec)
	}
	for i := 1; i < len(spec.Rings); i++ {
		if spec.Rings[i].Radius <= spec.Rings[i-1].Radius {
			t.Fatalf("rings must be listed innermost first")
		}
	}
	if spec.Spawner.Color.A != 255 {
		t.Fatalf("expected opaque spawner color, got %+v", spec.Spawner.Color)
	}
}

func TestValidateRejectsBadTuning(t *testing.T) {
	base, err := TuningFS.ReadFile(GameFile)
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		name    string
		replace [2]string
	}{
		{"zero_slots", [2]string{"slots: 4", "slots: 0"}},
		{"negative_radius", [2]string{"radius: 300", "radius: -1"}},
		{"unknown_effect", [2]string{"effects: [time_slow, time_speed]", "effects: [time_stop]"}},
		{"bad_color", [2]string{`"#e15554"`, `"red"`}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			src := string(base)
			if !strings.Contains(src, c.replace[0]) {
				t.Fatalf("fixture text %q not found", c.replace[0])
			}
			src = strings.Replace(src, c.replace[0], c.replace[1], 1)
			if _, err := ParseGameSpec([]byte(src)); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLoadPrefersDiskCopy(t *testing.T) {
	dir := t.TempDir()
	prev := Dir
	Dir = dir
	t.Cleanup(func() { Dir = prev })

	embedded, err := Load(GameFile)
	if err != nil {
		t.Fatal(err)
	}
	override := strings.Replace(string(embedded), "seed: 1337", "seed: 7", 1)
	if err := os.WriteFile(filepath.Join(dir, GameFile), []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}

	spec, err := LoadGameSpec()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.Seed != 7 {
		t.Fatalf("expected disk override seed 7, got %d", spec.Seed)
	}
	if _, ok := ModTime(GameFile); !ok {
		t.Fatalf("expected mod time for disk copy")
	}
}

func TestLoadScript(t *testing.T) {
	cases := []string{"director.tengo", "scripts/director.tengo", "prefabs/scripts/director.tengo"}
	for _, name := range cases {
		t.Run(name, func(t *testing.T) {
			b, err := LoadScript(name)
			if err != nil || len(b) == 0 {
				t.Fatalf("load %s: %v", name, err)
			}
		})
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, GameFile)
	if err := os.WriteFile(path, []byte("seed: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_ = os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644)

	select {
	case name := <-w.Events:
		if filepath.Base(name) != GameFile {
			t.Fatalf("unexpected event for %s", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no event for tuning write")
	}
}

func TestOverridePaths(t *testing.T) {
	cases := []struct {
		name   string
		tuning string
		script string
	}{
		{"game.yaml", "game.yaml", "scripts/game.yaml"},
		{"prefabs/game.yaml", "game.yaml", "scripts/game.yaml"},
		{"director.tengo", "director.tengo", "scripts/director.tengo"},
		{"prefabs/scripts/director.tengo", "scripts/director.tengo", "scripts/director.tengo"},
		{"", "", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := tuningPath(c.name); got != c.tuning {
				t.Fatalf("tuningPath: expected %q, got %q", c.tuning, got)
			}
			if got := scriptPath(c.name); got != c.script {
				t.Fatalf("scriptPath: expected %q, got %q", c.script, got)
			}
		})
	}
}
