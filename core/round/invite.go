package round

import (
	"math/rand"
	"time"
)

// inviteScheduler decides when idle play invites are due. The first
// interval is short so a freshly powered board shows signs of life quickly.
type inviteScheduler struct {
	first    time.Duration
	min, max time.Duration
	rng      *rand.Rand

	scheduled bool
	last      time.Time
	delay     time.Duration
}

func newInviteScheduler(cfg Config, rng *rand.Rand) *inviteScheduler {
	return &inviteScheduler{
		first: cfg.InviteFirst,
		min:   cfg.InviteMin,
		max:   cfg.InviteMax,
		rng:   rng,
	}
}

// Schedule picks the next delay measured from now.
func (s *inviteScheduler) Schedule(now time.Time) time.Duration {
	if !s.scheduled {
		s.delay = s.first
		s.scheduled = true
	} else {
		s.delay = s.min
		if span := s.max - s.min; span > 0 {
			// whole seconds, max inclusive
			s.delay += time.Duration(s.rng.Int63n(int64(span/time.Second)+1)) * time.Second
		}
	}
	s.last = now
	return s.delay
}

// Due reports whether the scheduled invite should play.
func (s *inviteScheduler) Due(now time.Time) bool {
	return s.scheduled && now.Sub(s.last) >= s.delay
}

// Remaining returns the time left before the next invite.
func (s *inviteScheduler) Remaining(now time.Time) time.Duration {
	if r := s.delay - now.Sub(s.last); r > 0 {
		return r
	}
	return 0
}
