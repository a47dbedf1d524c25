package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/opendan/opendan/internal/core"
	"github.com/opendan/opendan/internal/storage"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawTextColored(0, 0, "plain", core.ColorDefault)
	s.DrawTextColored(6, 0, "cyan", core.ColorCyan)
	s.DrawVLine(11, 0, 3, '│', core.ColorGray)

	out := ansi.Strip(RenderScreen(s))
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "plain cyan │" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[2] != "           │" {
		t.Errorf("line 2 = %q", lines[2])
	}
}

func TestRenderScreenEmpty(t *testing.T) {
	if out := RenderScreen(core.NewScreen(0, 0)); out != "" {
		t.Errorf("Empty screen rendered %q", out)
	}
}

func TestFormatCap(t *testing.T) {
	if FormatCap(0) != "∞" {
		t.Errorf("FormatCap(0) = %q", FormatCap(0))
	}
	if FormatCap(144) != "144" {
		t.Errorf("FormatCap(144) = %q", FormatCap(144))
	}
}

func TestHistoryRows(t *testing.T) {
	when := time.Date(2026, 3, 14, 15, 9, 0, 0, time.UTC)
	rows := HistoryRows([]storage.SessionRecord{{
		Scene:          "play-7",
		RenderCapHz:    240,
		Ticks:          5000,
		FramesRendered: 1200,
		FramesSkipped:  1300,
		WallSeconds:    5,
		CreatedAt:      when,
	}})

	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	want := []string{"Mar 14 15:09", "play-7", "240", "5000", "240.0", "1300", "0", "5.0s"}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Errorf("column %d = %q, expected %q", i, rows[0][i], cell)
		}
	}
}

func TestHistoryModelWithoutStore(t *testing.T) {
	m := NewHistoryModel(nil, 80, 24)
	if m.Scene() != "all" {
		t.Errorf("Scene() = %q, expected all", m.Scene())
	}
	if !strings.Contains(m.View(), "No sessions recorded yet") {
		t.Error("Empty history should show the placeholder")
	}
}
