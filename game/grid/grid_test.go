package grid

import (
	"errors"
	"testing"
)

func TestParseValidLayout(t *testing.T) {
	g, err := Parse([]string{
		"S..L",
		".XRL",
		"L...",
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if g.Rows() != 3 || g.Cols() != 4 {
		t.Errorf("Expected 3x4 grid, got %dx%d", g.Rows(), g.Cols())
	}
	if g.Start() != (Pos{Row: 0, Col: 0}) {
		t.Errorf("Expected start at (0,0), got %v", g.Start())
	}
	if g.LitterCount() != 3 {
		t.Errorf("Expected 3 litter cells, got %d", g.LitterCount())
	}
}

func TestParseLitterIndicesRowMajor(t *testing.T) {
	g, err := Parse([]string{
		"L.S",
		"RXL",
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	wantOrder := []Pos{{Row: 0, Col: 0}, {Row: 1, Col: 2}}
	got := g.LitterPositions()
	if len(got) != len(wantOrder) {
		t.Fatalf("Expected %d litter positions, got %d", len(wantOrder), len(got))
	}
	for i, want := range wantOrder {
		if got[i] != want {
			t.Errorf("Litter %d: expected %v, got %v", i, want, got[i])
		}
		idx, ok := g.LitterIndex(want.Row, want.Col)
		if !ok || idx != i {
			t.Errorf("LitterIndex(%v): expected (%d, true), got (%d, %v)", want, i, idx, ok)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		layout []string
		want   error
	}{
		{"empty layout", nil, ErrEmptyLayout},
		{"empty row", []string{""}, ErrEmptyLayout},
		{"ragged rows", []string{"S..", ".."}, ErrRaggedLayout},
		{"no dock", []string{"...", ".L."}, ErrNoDock},
		{"two docks", []string{"S.S"}, ErrMultipleDocks},
		{"unknown symbol", []string{"S.?"}, ErrUnknownSymbol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.layout)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCellClassification(t *testing.T) {
	g, err := Parse([]string{
		"S.X",
		"RL.",
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	tests := []struct {
		r, c int
		want CellType
	}{
		{0, 0, Dock},
		{0, 1, Floor},
		{0, 2, Obstacle},
		{1, 0, Recharge},
		{1, 1, Litter},
	}
	for _, tt := range tests {
		if got := g.At(tt.r, tt.c).Type; got != tt.want {
			t.Errorf("At(%d,%d): expected %s, got %s", tt.r, tt.c, tt.want, got)
		}
	}
}

func TestInBoundsAndPassable(t *testing.T) {
	g, err := Parse([]string{
		"S.X",
		"RL.",
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if g.InBounds(-1, 0) || g.InBounds(0, -1) || g.InBounds(2, 0) || g.InBounds(0, 3) {
		t.Error("Expected out-of-bounds coordinates to be rejected")
	}
	if !g.InBounds(1, 2) {
		t.Error("Expected (1,2) to be in bounds")
	}

	if g.Passable(0, 2) {
		t.Error("Expected obstacle cell to be impassable")
	}
	if g.Passable(0, 3) {
		t.Error("Expected out-of-bounds cell to be impassable")
	}
	if !g.Passable(1, 1) {
		t.Error("Expected litter cell to be passable")
	}
}

func TestDirectionRoundTrip(t *testing.T) {
	for _, d := range Directions {
		parsed, ok := ParseDirection(d.String())
		if !ok || parsed != d {
			t.Errorf("ParseDirection(%q): expected (%v, true), got (%v, %v)", d.String(), d, parsed, ok)
		}
	}
	if _, ok := ParseDirection("diagonal"); ok {
		t.Error("Expected ParseDirection to reject unknown names")
	}
}

func TestDirectionOffsets(t *testing.T) {
	tests := []struct {
		d      Direction
		dr, dc int
	}{
		{Down, 1, 0},
		{Up, -1, 0},
		{Right, 0, 1},
		{Left, 0, -1},
	}
	for _, tt := range tests {
		dr, dc := tt.d.Offset()
		if dr != tt.dr || dc != tt.dc {
			t.Errorf("%s offset: expected (%d,%d), got (%d,%d)", tt.d, tt.dr, tt.dc, dr, dc)
		}
	}
}
