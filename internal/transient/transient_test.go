package transient

import (
	"math"
	"testing"

	"github.com/litescript/ls-orrery/internal/trail"
)

const frame = 1.0 / 30

func TestDormantUntilIntervalExceeded(t *testing.T) {
	l := New(DefaultConfig(), 1, nil)

	// 29.9 seconds of dormancy: nothing yet.
	for i := 0; i < 299; i++ {
		if ev := l.Step(0.1, 0.1); ev != EventNone {
			t.Fatalf("unexpected event %v at step %d", ev, i)
		}
	}
	if l.Phase() != Dormant {
		t.Fatalf("phase = %v before interval", l.Phase())
	}

	// Push past 30s.
	ev := l.Step(0.2, 0.2)
	if ev != EventSpawned {
		t.Fatalf("event = %v, want spawned", ev)
	}
	if l.Phase() != Active {
		t.Fatalf("phase = %v, want active", l.Phase())
	}
	if l.Timer() != 0 {
		t.Errorf("timer = %v after spawn, want 0", l.Timer())
	}
}

func TestSpawnGeometry(t *testing.T) {
	cfg := DefaultConfig()
	for seed := uint64(0); seed < 50; seed++ {
		l := New(cfg, seed, nil)
		if !l.Spawn() {
			t.Fatal("Spawn on dormant lifecycle returned false")
		}
		obj, ok := l.Current()
		if !ok {
			t.Fatal("Current reported no object after Spawn")
		}

		if r := obj.Position.HorizontalNorm(); math.Abs(r-cfg.SpawnRadius) > 1e-9 {
			t.Errorf("seed %d: spawn radius %v, want %v", seed, r, cfg.SpawnRadius)
		}
		if math.Abs(obj.Position.Y) > cfg.VerticalJitter {
			t.Errorf("seed %d: jitter %v exceeds %v", seed, obj.Position.Y, cfg.VerticalJitter)
		}
		if s := obj.Velocity.Norm(); math.Abs(s-cfg.Speed) > 1e-9 {
			t.Errorf("seed %d: speed %v, want %v", seed, s, cfg.Speed)
		}
		// Heading toward the origin.
		toOrigin := obj.Position.Scale(-1).Normalized()
		if d := toOrigin.Dot(obj.Velocity.Normalized()); math.Abs(d-1) > 1e-9 {
			t.Errorf("seed %d: velocity not aimed at origin (cos=%v)", seed, d)
		}
	}
}

func TestAtMostOneActive(t *testing.T) {
	l := New(DefaultConfig(), 3, nil)
	if !l.Spawn() {
		t.Fatal("first Spawn failed")
	}
	first, _ := l.Current()
	if l.Spawn() {
		t.Error("second Spawn succeeded while active")
	}
	again, _ := l.Current()
	if first != again {
		t.Error("second Spawn replaced the active object")
	}

	// A long active stretch never spawns a second object even though the
	// dormant timer would otherwise have elapsed.
	cfg := DefaultConfig()
	cfg.SpawnInterval = 0
	cfg.OuterBound = 1e9
	cfg.PassThreshold = 1e9
	l = New(cfg, 3, nil)
	l.Step(frame, frame)
	for i := 0; i < 100; i++ {
		if ev := l.Step(frame, frame); ev == EventSpawned {
			t.Fatalf("spawned while active at step %d", i)
		}
	}
}

func TestActiveRecordsTrail(t *testing.T) {
	buf := trail.New(trail.TransientCapacity)
	l := New(DefaultConfig(), 9, buf)
	l.Spawn()
	start, _ := l.Current()

	l.Step(frame, 0.5)
	obj, _ := l.Current()

	want := start.Position.Add(start.Velocity.Scale(0.5))
	if !obj.Position.ApproxEqual(want, 1e-9) {
		t.Errorf("position = %v, want %v", obj.Position, want)
	}
	if p, ok := buf.At(0); !ok || p != obj.Position {
		t.Errorf("trail head = %v,%v, want %v", p, ok, obj.Position)
	}
}

func TestPausedStepKeepsTrail(t *testing.T) {
	buf := trail.New(trail.TransientCapacity)
	l := New(DefaultConfig(), 9, buf)
	l.Spawn()
	for i := 0; i < 5; i++ {
		l.Step(frame, frame)
	}
	head, _ := buf.At(0)

	for i := 0; i < 40; i++ {
		if ev := l.Step(frame, 0); ev != EventNone {
			t.Fatalf("paused step %d: event %v", i, ev)
		}
	}
	if buf.Len() != 5 {
		t.Errorf("trail len = %d after paused steps, want 5", buf.Len())
	}
	if p, _ := buf.At(0); p != head {
		t.Errorf("trail head moved while paused: %v -> %v", head, p)
	}
}

func TestDespawnPastOuterBound(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PassThreshold = math.Inf(1) // isolate the outer-bound test
	buf := trail.New(trail.TransientCapacity)
	l := New(cfg, 5, buf)
	l.Spawn()

	var despawned bool
	for i := 0; i < 10000; i++ {
		if ev := l.Step(frame, frame); ev == EventDespawned {
			despawned = true
			break
		}
		obj, _ := l.Current()
		if obj.Position.Norm() > cfg.OuterBound {
			t.Fatal("object beyond outer bound still active")
		}
	}
	if !despawned {
		t.Fatal("object never despawned")
	}
	if _, ok := l.Current(); ok {
		t.Error("object still present after despawn")
	}
	if buf.Len() != 0 {
		t.Errorf("trail has %d entries after despawn", buf.Len())
	}
	for i := 0; i < buf.Cap(); i++ {
		if _, ok := buf.At(i); ok {
			t.Fatalf("trail slot %d not empty after despawn", i)
		}
	}
}

func TestDespawnOnPassThreshold(t *testing.T) {
	cfg := DefaultConfig()
	l := New(cfg, 11, nil)
	l.Spawn()

	steps := 0
	for l.Phase() == Active && steps < 10000 {
		l.Step(frame, frame)
		steps++
	}
	if l.Phase() != Dormant {
		t.Fatal("never despawned")
	}
	// It crossed the origin and ran PassThreshold past it, well before
	// the outer bound.
	travelled := float64(steps) * frame * cfg.Speed
	if want := cfg.SpawnRadius + cfg.PassThreshold; travelled < want-1 || travelled > want+1 {
		t.Errorf("travelled %v before despawn, want about %v", travelled, want)
	}
}

func TestTimerRestartsAfterDespawn(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpawnInterval = 1
	l := New(cfg, 2, nil)
	l.Spawn()
	for l.Phase() == Active {
		l.Step(frame, 1)
	}
	if l.Timer() != 0 {
		t.Errorf("timer = %v right after despawn", l.Timer())
	}
	if ev := l.Step(0.5, 0.5); ev != EventNone {
		t.Errorf("respawned too early: %v", ev)
	}
	if ev := l.Step(0.6, 0.6); ev != EventSpawned {
		t.Errorf("event = %v, want spawned after interval", ev)
	}
}

func TestReset(t *testing.T) {
	l := New(DefaultConfig(), 4, nil)
	l.Step(10, 10)
	l.Spawn()
	l.Step(frame, frame)
	l.Reset()

	if l.Phase() != Dormant || l.Timer() != 0 || l.Trail().Len() != 0 {
		t.Errorf("Reset left phase=%v timer=%v trail=%d", l.Phase(), l.Timer(), l.Trail().Len())
	}
}
