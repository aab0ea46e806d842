package round

import (
	"time"

	"github.com/ingyamilmolinar/shimon/core/model"
	"github.com/ingyamilmolinar/shimon/core/sequence"
)

// Config holds every timing and rule the state machine reads.
type Config struct {
	Timing model.Timing
	MaxLen int
	Rules  sequence.Rules

	// MinPressInterval suppresses mechanical double presses that survive
	// debouncing.
	MinPressInterval time.Duration

	// Fallback deadlines for each announcement.
	InstructionsBudget time.Duration
	MyTurnBudget       time.Duration
	YourTurnBudget     time.Duration
	FeedbackBudget     time.Duration
	GameOverBudget     time.Duration
	ScoreBudget        time.Duration

	// OverlapGuard separates the previous clip from "my turn";
	// FolderSwitchGuard separates "my turn" from the first color name;
	// PostGameGrace separates the last announcement from the invite.
	OverlapGuard      time.Duration
	FolderSwitchGuard time.Duration
	PostGameGrace     time.Duration

	InviteFirst time.Duration
	InviteMin   time.Duration
	InviteMax   time.Duration
	InviteClips int

	// Confuser is the power-on value of the spoken-color confuser.
	Confuser bool
	// ConfuserToggle is the button that flips the confuser from idle.
	ConfuserToggle model.Color
}

func DefaultConfig() Config {
	return Config{
		Timing:             model.DefaultTiming(),
		MaxLen:             model.DefaultMaxLen,
		Rules:              sequence.DefaultRules(),
		MinPressInterval:   200 * time.Millisecond,
		InstructionsBudget: 2000 * time.Millisecond,
		MyTurnBudget:       1000 * time.Millisecond,
		YourTurnBudget:     1000 * time.Millisecond,
		FeedbackBudget:     1000 * time.Millisecond,
		GameOverBudget:     2000 * time.Millisecond,
		ScoreBudget:        2000 * time.Millisecond,
		OverlapGuard:       250 * time.Millisecond,
		FolderSwitchGuard:  200 * time.Millisecond,
		PostGameGrace:      250 * time.Millisecond,
		InviteFirst:        5 * time.Second,
		InviteMin:          20 * time.Second,
		InviteMax:          45 * time.Second,
		InviteClips:        5,
		Confuser:           true,
		ConfuserToggle:     model.Yellow,
	}
}
