package domain

import "testing"

func TestPlayTogglesSameIndex(t *testing.T) {
	t.Parallel()
	p := NewPlayback(7)

	action := p.Play(3)
	if action.Kind != ActionStart || action.Index != 3 {
		t.Fatalf("expected start at 3, got %+v", action)
	}
	if idx, playing := p.Playing(); !playing || idx != 3 {
		t.Fatalf("expected playing at 3, got %d/%v", idx, playing)
	}

	action = p.Play(3)
	if action.Kind != ActionStop {
		t.Fatalf("expected stop on second press, got %+v", action)
	}
	if _, playing := p.Playing(); playing {
		t.Fatalf("expected idle after toggle")
	}
}

func TestPlaySwitchesIndexAndLeavesSequential(t *testing.T) {
	t.Parallel()
	p := NewPlayback(7)
	p.PlayAll()
	if !p.Sequential() {
		t.Fatalf("expected sequential mode on")
	}

	action := p.Play(5)
	if action.Kind != ActionStart || action.Index != 5 {
		t.Fatalf("expected start at 5, got %+v", action)
	}
	if p.Sequential() {
		t.Fatalf("expected manual selection to leave sequential mode")
	}
}

func TestPlayOutOfRangeIsNoop(t *testing.T) {
	t.Parallel()
	p := NewPlayback(3)
	if action := p.Play(-1); action.Kind != ActionNone {
		t.Fatalf("expected no-op for negative index, got %+v", action)
	}
	if action := p.Play(3); action.Kind != ActionNone {
		t.Fatalf("expected no-op past the last clip, got %+v", action)
	}
	if _, playing := p.Playing(); playing {
		t.Fatalf("expected machine untouched")
	}
}

func TestPlayAllTogglesSequential(t *testing.T) {
	t.Parallel()
	p := NewPlayback(3)

	action := p.PlayAll()
	if action.Kind != ActionStart || action.Index != 0 {
		t.Fatalf("expected sequential start at 0, got %+v", action)
	}
	if !p.Sequential() {
		t.Fatalf("expected sequential mode on")
	}

	action = p.PlayAll()
	if action.Kind != ActionStop {
		t.Fatalf("expected second play-all to stop, got %+v", action)
	}
	if p.Sequential() {
		t.Fatalf("expected sequential mode off")
	}

	empty := NewPlayback(0)
	if action := empty.PlayAll(); action.Kind != ActionNone {
		t.Fatalf("expected no-op on empty chapter, got %+v", action)
	}
}

func TestClipEndedAdvancesSequentially(t *testing.T) {
	t.Parallel()
	p := NewPlayback(3)
	p.PlayAll()

	action := p.ClipEnded()
	if action.Kind != ActionStart || action.Index != 1 {
		t.Fatalf("expected advance to 1, got %+v", action)
	}
	action = p.ClipEnded()
	if action.Kind != ActionStart || action.Index != 2 {
		t.Fatalf("expected advance to 2, got %+v", action)
	}

	// Last clip finished: chapter exhausted, back to idle.
	action = p.ClipEnded()
	if action.Kind != ActionNone {
		t.Fatalf("expected no action at chapter end, got %+v", action)
	}
	if _, playing := p.Playing(); playing {
		t.Fatalf("expected idle after chapter end")
	}
	if p.Sequential() {
		t.Fatalf("expected sequential mode cleared after chapter end")
	}
}

func TestClipEndedWithoutSequentialStops(t *testing.T) {
	t.Parallel()
	p := NewPlayback(3)
	p.Play(1)

	action := p.ClipEnded()
	if action.Kind != ActionNone {
		t.Fatalf("expected no follow-up clip, got %+v", action)
	}
	if _, playing := p.Playing(); playing {
		t.Fatalf("expected idle after single clip end")
	}
}

func TestClipEndedWhileIdleIsNoop(t *testing.T) {
	t.Parallel()
	p := NewPlayback(3)
	if action := p.ClipEnded(); action.Kind != ActionNone {
		t.Fatalf("expected no-op while idle, got %+v", action)
	}
}

func TestStopClearsSequential(t *testing.T) {
	t.Parallel()
	p := NewPlayback(3)
	p.PlayAll()

	action := p.Stop()
	if action.Kind != ActionStop {
		t.Fatalf("expected stop action, got %+v", action)
	}
	if p.Sequential() {
		t.Fatalf("expected sequential mode cleared")
	}
	if action := p.Stop(); action.Kind != ActionNone {
		t.Fatalf("expected idle stop to be a no-op, got %+v", action)
	}
}
