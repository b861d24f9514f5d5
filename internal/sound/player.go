package sound

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"

	"focusloop/resources"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// Effect identifies one of the completion chimes.
type Effect int

const (
	EffectFocusComplete Effect = iota
	EffectBreakComplete
)

var effectFiles = map[Effect]string{
	EffectFocusComplete: "focus_complete.wav",
	EffectBreakComplete: "break_complete.wav",
}

// Player plays completion chimes through the system speaker.
type Player struct {
	mu      sync.Mutex
	buffers map[Effect]*beep.Buffer
	enabled bool
	volume  float64
}

// NewPlayer decodes the embedded chimes and initializes the speaker.
// Audio failures disable the player rather than failing the caller.
func NewPlayer(enabled bool) (*Player, error) {
	player := &Player{
		buffers: make(map[Effect]*beep.Buffer),
		enabled: enabled,
		volume:  0,
	}

	var format beep.Format
	for effect, fileName := range effectFiles {
		data, err := resources.Sound(fileName)
		if err != nil {
			return nil, err
		}

		streamer, fileFormat, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", fileName, err)
		}

		if format.SampleRate == 0 {
			format = fileFormat
			if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
				streamer.Close()
				return nil, fmt.Errorf("init speaker: %w", err)
			}
		}

		buffer := beep.NewBuffer(fileFormat)
		buffer.Append(streamer)
		player.buffers[effect] = buffer
		streamer.Close()
	}

	return player, nil
}

// SetEnabled toggles chime playback.
func (player *Player) SetEnabled(enabled bool) {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.enabled = enabled
}

// SetVolume adjusts playback volume in beep's exponential scale.
func (player *Player) SetVolume(volume float64) {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.volume = volume
}

// Play queues the given chime. No-op when disabled or on a nil player, so
// callers can hold a nil Player when audio setup failed.
func (player *Player) Play(effect Effect) {
	if player == nil {
		return
	}
	player.mu.Lock()
	enabled := player.enabled
	buffer := player.buffers[effect]
	volume := player.volume
	player.mu.Unlock()

	if !enabled || buffer == nil {
		return
	}

	speaker.Play(&effects.Volume{
		Streamer: buffer.Streamer(0, buffer.Len()),
		Base:     2,
		Volume:   volume,
	})
}
