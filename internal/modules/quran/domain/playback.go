package domain

// ActionKind names the side effect a playback transition asks for.
// The machine itself never touches the player; callers interpret
// the returned Action.
type ActionKind int

const (
	ActionNone ActionKind = iota
	// ActionStart asks the caller to start the clip at Action.Index,
	// stopping whatever is currently audible first.
	ActionStart
	// ActionStop asks the caller to stop the current clip.
	ActionStop
)

type Action struct {
	Kind  ActionKind
	Index int
}

// Playback tracks which verse clip is audible and whether playback
// should advance through the chapter on its own. Playing and
// sequential are orthogonal: sequential playback still exposes the
// single audible index.
type Playback struct {
	clipCount  int
	playing    bool
	index      int
	sequential bool
}

func NewPlayback(clipCount int) Playback {
	return Playback{clipCount: clipCount}
}

func (p Playback) Playing() (int, bool) { return p.index, p.playing }

func (p Playback) Sequential() bool { return p.sequential }

// Play toggles the clip at index. Pressing play on the verse that is
// already audible pauses it; any other index switches playback there.
// Manual selection always leaves sequential mode.
func (p *Playback) Play(index int) Action {
	if index < 0 || index >= p.clipCount {
		return Action{Kind: ActionNone}
	}
	if p.playing && p.index == index {
		p.playing = false
		p.sequential = false
		return Action{Kind: ActionStop}
	}
	p.playing = true
	p.index = index
	p.sequential = false
	return Action{Kind: ActionStart, Index: index}
}

// PlayAll starts sequential playback from the first verse, or stops
// it when sequential mode is already running.
func (p *Playback) PlayAll() Action {
	if p.sequential {
		p.playing = false
		p.sequential = false
		return Action{Kind: ActionStop}
	}
	if p.clipCount == 0 {
		return Action{Kind: ActionNone}
	}
	p.playing = true
	p.index = 0
	p.sequential = true
	return Action{Kind: ActionStart, Index: 0}
}

// Stop halts playback unconditionally and leaves sequential mode.
func (p *Playback) Stop() Action {
	if !p.playing {
		p.sequential = false
		return Action{Kind: ActionNone}
	}
	p.playing = false
	p.sequential = false
	return Action{Kind: ActionStop}
}

// ClipEnded handles the natural end of the audible clip. In
// sequential mode it advances to the next verse until the chapter is
// exhausted; otherwise playback simply stops. The clip is already
// silent, so no ActionStop is ever needed here.
func (p *Playback) ClipEnded() Action {
	if !p.playing {
		return Action{Kind: ActionNone}
	}
	if p.sequential && p.index < p.clipCount-1 {
		p.index++
		return Action{Kind: ActionStart, Index: p.index}
	}
	p.playing = false
	p.sequential = false
	return Action{Kind: ActionNone}
}
