package trail

import (
	"math"
	"testing"

	"github.com/litescript/ls-orrery/internal/vmath"
)

func tick(k int) vmath.Vec3 {
	return vmath.V(float64(k), float64(-k), 0.5*float64(k))
}

func TestRecordFewerThanCapacity(t *testing.T) {
	b := New(10)
	for k := 1; k <= 4; k++ {
		b.Record(tick(k))
	}

	if b.Len() != 4 {
		t.Fatalf("Len = %d, want 4", b.Len())
	}
	for i := 0; i < 4; i++ {
		p, ok := b.At(i)
		if !ok {
			t.Fatalf("At(%d) empty", i)
		}
		if want := tick(4 - i); p != want {
			t.Errorf("At(%d) = %v, want %v", i, p, want)
		}
	}
	for i := 4; i < b.Cap(); i++ {
		if _, ok := b.At(i); ok {
			t.Errorf("At(%d) should be empty", i)
		}
	}
}

func TestRecordOverflowKeepsNewest(t *testing.T) {
	// 81 ticks into 80 slots: ticks 2..81, newest first.
	b := New(BodyCapacity)
	for k := 1; k <= 81; k++ {
		b.Record(tick(k))
	}

	if b.Len() != BodyCapacity {
		t.Fatalf("Len = %d, want %d", b.Len(), BodyCapacity)
	}
	for i := 0; i < BodyCapacity; i++ {
		p, _ := b.At(i)
		if want := tick(81 - i); p != want {
			t.Fatalf("At(%d) = %v, want %v", i, p, want)
		}
	}
	for _, p := range b.Points() {
		if p == tick(1) {
			t.Fatal("tick 1 should have been discarded")
		}
	}
}

func TestLengthNeverExceedsCapacity(t *testing.T) {
	b := New(SatelliteCapacity)
	for k := 0; k < 1000; k++ {
		b.Record(tick(k))
		if b.Len() > b.Cap() {
			t.Fatalf("Len %d > Cap %d after %d records", b.Len(), b.Cap(), k+1)
		}
	}
	if got := len(b.Points()); got != SatelliteCapacity {
		t.Errorf("Points len = %d, want %d", got, SatelliteCapacity)
	}
}

func TestReset(t *testing.T) {
	b := New(TransientCapacity)
	for k := 0; k < 45; k++ {
		b.Record(tick(k))
	}
	b.Reset()

	if b.Len() != 0 {
		t.Errorf("Len after Reset = %d", b.Len())
	}
	for i := 0; i < b.Cap(); i++ {
		if _, ok := b.At(i); ok {
			t.Fatalf("slot %d not empty after Reset", i)
		}
	}

	// Recording after a reset starts a fresh history.
	b.Record(tick(99))
	if p, ok := b.At(0); !ok || p != tick(99) {
		t.Errorf("At(0) = %v,%v after reset+record", p, ok)
	}
	if b.Len() != 1 {
		t.Errorf("Len = %d, want 1", b.Len())
	}
}

func TestOriginIsAValidPosition(t *testing.T) {
	b := New(3)
	b.Record(vmath.Zero)
	if p, ok := b.At(0); !ok || p != vmath.Zero {
		t.Errorf("origin entry reported as %v,%v", p, ok)
	}
}

func TestFade(t *testing.T) {
	b := New(80)
	tests := []struct {
		i    int
		want float64
	}{
		{0, 1},
		{40, 0.5},
		{79, 1.0 / 80},
	}
	for _, tt := range tests {
		if got := b.Fade(tt.i); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Fade(%d) = %v, want %v", tt.i, got, tt.want)
		}
	}
}

func TestNewSetCapacities(t *testing.T) {
	s := NewSet(8, 13)
	if len(s.Bodies) != 8 || len(s.Satellites) != 13 {
		t.Fatalf("set sizes %d/%d", len(s.Bodies), len(s.Satellites))
	}
	if s.Bodies[3].Cap() != BodyCapacity {
		t.Errorf("body cap = %d", s.Bodies[3].Cap())
	}
	if s.Satellites[0].Cap() != SatelliteCapacity {
		t.Errorf("satellite cap = %d", s.Satellites[0].Cap())
	}
	if s.Transient.Cap() != TransientCapacity {
		t.Errorf("transient cap = %d", s.Transient.Cap())
	}

	s.Bodies[1].Record(tick(1))
	s.Transient.Record(tick(2))
	s.ResetAll()
	if s.Bodies[1].Len() != 0 || s.Transient.Len() != 0 {
		t.Error("ResetAll left entries behind")
	}
}
