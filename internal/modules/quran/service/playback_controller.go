package service

import (
	"context"
	"errors"
	"sync"

	"iftar/internal/modules/quran/domain"
	quranout "iftar/internal/modules/quran/port/out"
)

// ErrStaleClip reports an end-of-clip event for a clip that a newer
// start has already superseded.
var ErrStaleClip = errors.New("clip superseded")

// Status mirrors the playback machine for callers outside the
// service layer.
type Status struct {
	Playing    bool
	Index      int
	Sequential bool
	Gen        int
}

// PlaybackController drives the playback state machine against a
// Player. Every started clip gets a generation number; events carry
// the generation back so a kill issued for clip n can never be
// mistaken for the natural end of clip n+1.
type PlaybackController struct {
	player quranout.Player

	mu   sync.Mutex
	urls []string
	m    domain.Playback
	gen  int
	done <-chan error
}

func NewPlaybackController(player quranout.Player) *PlaybackController {
	return &PlaybackController{player: player}
}

// Load resets the machine for a freshly opened chapter.
func (c *PlaybackController) Load(urls []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.urls = urls
	c.m = domain.NewPlayback(len(urls))
}

func (c *PlaybackController) Play(ctx context.Context, index int) (Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyLocked(ctx, c.m.Play(index))
}

func (c *PlaybackController) PlayAll(ctx context.Context) (Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyLocked(ctx, c.m.PlayAll())
}

func (c *PlaybackController) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.applyLocked(context.Background(), c.m.Stop())
	return err
}

func (c *PlaybackController) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusLocked()
}

// Await blocks until the clip started as gen finishes. A nil return
// means the clip played to its natural end.
func (c *PlaybackController) Await(ctx context.Context, gen int) error {
	c.mu.Lock()
	if gen != c.gen || c.done == nil {
		c.mu.Unlock()
		return ErrStaleClip
	}
	done := c.done
	c.mu.Unlock()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ClipEnded feeds an end event back into the machine. Natural ends
// advance sequential playback; killed or failed clips leave the
// machine wherever the interrupting transition put it.
func (c *PlaybackController) ClipEnded(ctx context.Context, gen int, playErr error) (Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return c.statusLocked(), nil
	}
	c.done = nil
	if playErr != nil {
		// The clip did not end on its own. Whoever stopped it has
		// already transitioned the machine.
		return c.statusLocked(), nil
	}
	return c.applyLocked(ctx, c.m.ClipEnded())
}

func (c *PlaybackController) applyLocked(ctx context.Context, action domain.Action) (Status, error) {
	switch action.Kind {
	case domain.ActionStart:
		c.stopLocked()
		done, err := c.player.Start(ctx, c.urls[action.Index])
		if err != nil {
			c.m.Stop()
			return c.statusLocked(), err
		}
		c.gen++
		c.done = done
	case domain.ActionStop:
		c.stopLocked()
	}
	return c.statusLocked(), nil
}

func (c *PlaybackController) stopLocked() {
	if c.done == nil {
		return
	}
	c.player.Stop()
	c.gen++
	c.done = nil
}

func (c *PlaybackController) statusLocked() Status {
	idx, playing := c.m.Playing()
	return Status{Playing: playing, Index: idx, Sequential: c.m.Sequential(), Gen: c.gen}
}
