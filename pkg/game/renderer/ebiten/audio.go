package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2/audio"
	"go.uber.org/zap"

	"secretcode/pkg/engine/sound"
)

const clipVolume = 0.3

// Speaker plays the synthesized puzzle clips. Only one clip sounds at a time.
type Speaker struct {
	ctx    *audio.Context
	clips  map[string][]byte
	player *audio.Player
	log    *zap.Logger
}

// NewSpeaker renders every known clip up front.
func NewSpeaker(log *zap.Logger) *Speaker {
	if log == nil {
		log = zap.NewNop()
	}
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sound.SampleRate)
	}
	clips := make(map[string][]byte, len(sound.Clips))
	for name, notes := range sound.Clips {
		clips[name] = sound.Render(notes, clipVolume)
	}
	return &Speaker{ctx: ctx, clips: clips, log: log}
}

// Play starts clip, cutting off whatever was playing.
func (s *Speaker) Play(clip string) {
	pcm, ok := s.clips[clip]
	if !ok {
		s.log.Warn("unknown clip", zap.String("clip", clip))
		return
	}
	s.Stop()
	s.player = s.ctx.NewPlayerFromBytes(pcm)
	s.player.Play()
}

// Stop silences the current clip.
func (s *Speaker) Stop() {
	if s.player == nil {
		return
	}
	s.player.Pause()
	if err := s.player.Close(); err != nil {
		s.log.Debug("closing player", zap.Error(err))
	}
	s.player = nil
}
