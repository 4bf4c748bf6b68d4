package watersort

import (
	"io"
	"sync"
)

// Cue is a sound the game asks for.
type Cue uint8

const (
	CueSelect Cue = iota
	CuePour
	CueReject
	CueLevelComplete
	CueButton
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueSelect:
		return "select"
	case CuePour:
		return "pour"
	case CueReject:
		return "reject"
	case CueLevelComplete:
		return "level-complete"
	case CueButton:
		return "button"
	default:
		return "unknown"
	}
}

// AudioPlayer plays sound cues. Implementations decide what a cue sounds like.
type AudioPlayer interface {
	Play(c Cue)
}

// AudioSettings are the player's audio switches.
type AudioSettings struct {
	Music bool
	SFX   bool
}

type nopAudio struct{}

func (nopAudio) Play(Cue) {}

// BellPlayer rings the terminal bell for the cues that need attention.
// The terminal has no music channel, so the music switch is kept only
// to be reported back to the player.
type BellPlayer struct {
	mu       sync.Mutex
	w        io.Writer
	settings AudioSettings
}

// NewBellPlayer creates a player writing to w.
func NewBellPlayer(w io.Writer, settings AudioSettings) *BellPlayer {
	return &BellPlayer{w: w, settings: settings}
}

// Play rings the bell for rejected pours and solved levels when SFX are on.
func (p *BellPlayer) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.settings.SFX || p.w == nil {
		return
	}
	switch c {
	case CueReject, CueLevelComplete:
		_, _ = io.WriteString(p.w, "\a")
	}
}

// Settings returns the current switches.
func (p *BellPlayer) Settings() AudioSettings {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settings
}

// SetSettings replaces the switches.
func (p *BellPlayer) SetSettings(s AudioSettings) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.settings = s
}
