//go:build !test

package audio

import (
	"fmt"

	"github.com/ebitengine/oto/v3"

	game_log "github.com/ingyamilmolinar/shimon/internal/log"
)

// New opens the default output and starts streaming the mixer. Only one
// Device may be opened per process.
func New(opts Options, logger *game_log.Logger) (*Device, error) {
	c, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	<-ready

	d := newDevice(opts, logger)
	p := c.NewPlayer(d.mix)
	p.SetBufferSize(bufferSizeBytes10ms)
	p.Play()
	d.closer = func() error {
		if err := p.Close(); err != nil {
			return fmt.Errorf("close player: %w", err)
		}
		return c.Suspend()
	}
	d.logger.Infof("output open, %d Hz mono", sampleRate)
	return d, nil
}
