//go:build test

package audio

import game_log "github.com/ingyamilmolinar/shimon/internal/log"

// New never opens a device in test builds.
func New(Options, *game_log.Logger) (*Device, error) { return nil, ErrUnavailable }
