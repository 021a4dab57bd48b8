package out

import (
	"context"
	"fmt"
	"os/exec"
	"sync"
)

// playerCommands lists known command-line audio players in order of
// preference, each with the flags that make it play a single URL
// silently and exit when the clip ends.
var playerCommands = [][]string{
	{"mpv", "--no-video", "--no-terminal", "--really-quiet"},
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
}

// ExecPlayer streams audio clips through an external player process.
// One clip plays at a time; starting a new one while another runs is
// the controller's responsibility to prevent.
type ExecPlayer struct {
	binary string
	args   []string

	mu  sync.Mutex
	cmd *exec.Cmd
}

// NewExecPlayer picks the first available player binary from PATH.
func NewExecPlayer() (*ExecPlayer, error) {
	for _, candidate := range playerCommands {
		path, err := exec.LookPath(candidate[0])
		if err != nil {
			continue
		}
		return &ExecPlayer{binary: path, args: candidate[1:]}, nil
	}
	return nil, fmt.Errorf("no audio player found, install mpv or ffplay")
}

func (p *ExecPlayer) Start(ctx context.Context, url string) (<-chan error, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cmd != nil {
		return nil, fmt.Errorf("player already running")
	}

	args := append(append([]string{}, p.args...), url)
	cmd := exec.CommandContext(ctx, p.binary, args...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", p.binary, err)
	}
	p.cmd = cmd

	done := make(chan error, 1)
	go func() {
		err := cmd.Wait()
		p.mu.Lock()
		if p.cmd == cmd {
			p.cmd = nil
		}
		p.mu.Unlock()
		done <- err
	}()
	return done, nil
}

// Stop kills the running clip, if any. The pending done channel then
// yields the kill error, marking the end as interrupted rather than
// natural. The slot is cleared here, not in the waiter, so the next
// Start never races against process teardown.
func (p *ExecPlayer) Stop() error {
	p.mu.Lock()
	cmd := p.cmd
	p.cmd = nil
	p.mu.Unlock()
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}

// SilentPlayer satisfies the player port when no audio binary is
// installed. Every clip "ends" immediately, so sequential playback
// walks the chapter without sound instead of erroring.
type SilentPlayer struct{}

func (SilentPlayer) Start(ctx context.Context, url string) (<-chan error, error) {
	done := make(chan error, 1)
	done <- nil
	return done, nil
}

func (SilentPlayer) Stop() error { return nil }
