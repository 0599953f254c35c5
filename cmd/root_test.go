package cmd

import (
	"testing"
	"time"

	"github.com/theirongolddev/lifeline/internal/config"
	"github.com/theirongolddev/lifeline/internal/pipeline"
)

func TestClock(t *testing.T) {
	defer func() { flagNow = "" }()

	flagNow = ""
	c, err := clock()
	if err != nil {
		t.Fatalf("clock() error = %v", err)
	}
	if _, ok := c.(pipeline.RealClock); !ok {
		t.Fatalf("clock() = %T, want RealClock", c)
	}

	flagNow = "2024-03-01"
	c, err = clock()
	if err != nil {
		t.Fatalf("clock() error = %v", err)
	}
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	if got := c.Now(); !got.Equal(want) {
		t.Fatalf("Now() = %v, want %v", got, want)
	}

	flagNow = "2024-03-01T12:30:00Z"
	c, err = clock()
	if err != nil {
		t.Fatalf("clock() error = %v", err)
	}
	if got := c.Now(); !got.Equal(time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)) {
		t.Fatalf("Now() = %v, want 2024-03-01T12:30:00Z", got)
	}

	flagNow = "next tuesday"
	if _, err := clock(); err == nil {
		t.Fatal("clock() accepted an unparseable date")
	}
}

func TestSnapshotPath(t *testing.T) {
	defer func() {
		flagSnapshot = ""
		appConfig = config.Config{}
	}()

	flagSnapshot = ""
	appConfig = config.DefaultConfig()
	if _, err := snapshotPath(); err == nil {
		t.Fatal("snapshotPath() with nothing configured returned no error")
	}

	appConfig.General.Snapshot = "/data/home.toml"
	if got, _ := snapshotPath(); got != "/data/home.toml" {
		t.Fatalf("snapshotPath() = %q, want configured path", got)
	}

	flagSnapshot = "other.yaml"
	if got, _ := snapshotPath(); got != "other.yaml" {
		t.Fatalf("snapshotPath() = %q, want flag value", got)
	}
}
