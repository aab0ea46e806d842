// Package config loads settings from config.yaml and SHIMON_* environment
// variables. Defaults reproduce the stock game.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ingyamilmolinar/shimon/core/model"
	"github.com/ingyamilmolinar/shimon/core/round"
	"github.com/ingyamilmolinar/shimon/core/sequence"
	"github.com/ingyamilmolinar/shimon/internal/audio"
)

const EnvPrefix = "SHIMON"

type Config struct {
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	Game struct {
		Seed           int64  `mapstructure:"seed"`
		Confuser       bool   `mapstructure:"confuser"`
		ConfuserToggle string `mapstructure:"confuser_toggle"`
		MaxLen         int    `mapstructure:"max_len"`
		MaxSameColor   int    `mapstructure:"max_same_color"`
		MinDistinct    int    `mapstructure:"min_distinct"`
		RetryBound     int    `mapstructure:"retry_bound"`
	} `mapstructure:"game"`
	Timing struct {
		Debounce         time.Duration `mapstructure:"debounce"`
		MinPressInterval time.Duration `mapstructure:"min_press_interval"`
		CueOn            time.Duration `mapstructure:"cue_on"`
		CueOnMin         time.Duration `mapstructure:"cue_on_min"`
		CueGap           time.Duration `mapstructure:"cue_gap"`
		CueGapMin        time.Duration `mapstructure:"cue_gap_min"`
		InputTimeout     time.Duration `mapstructure:"input_timeout"`
		InputTimeoutMin  time.Duration `mapstructure:"input_timeout_min"`
		SpeedStep        float64       `mapstructure:"speed_step"`
		SpeedEvery       int           `mapstructure:"speed_every"`
	} `mapstructure:"timing"`
	Cues struct {
		Instructions      time.Duration `mapstructure:"instructions"`
		MyTurn            time.Duration `mapstructure:"my_turn"`
		YourTurn          time.Duration `mapstructure:"your_turn"`
		Feedback          time.Duration `mapstructure:"feedback"`
		GameOver          time.Duration `mapstructure:"game_over"`
		Score             time.Duration `mapstructure:"score"`
		OverlapGuard      time.Duration `mapstructure:"overlap_guard"`
		FolderSwitchGuard time.Duration `mapstructure:"folder_switch_guard"`
		PostGameGrace     time.Duration `mapstructure:"post_game_grace"`
	} `mapstructure:"cues"`
	Invite struct {
		First time.Duration `mapstructure:"first"`
		Min   time.Duration `mapstructure:"min"`
		Max   time.Duration `mapstructure:"max"`
		Clips int           `mapstructure:"clips"`
	} `mapstructure:"invite"`
	Audio struct {
		Enabled bool    `mapstructure:"enabled"`
		Volume  float64 `mapstructure:"volume"`
	} `mapstructure:"audio"`
	Metrics struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"metrics"`
	Sim struct {
		Headless bool          `mapstructure:"headless"`
		Tick     time.Duration `mapstructure:"tick"`
		Scale    float64       `mapstructure:"scale"`
		Keys     struct {
			Red    string `mapstructure:"red"`
			Blue   string `mapstructure:"blue"`
			Green  string `mapstructure:"green"`
			Yellow string `mapstructure:"yellow"`
		} `mapstructure:"keys"`
	} `mapstructure:"sim"`
}

func setDefaults(v *viper.Viper) {
	rc := round.DefaultConfig()

	v.SetDefault("log.level", "info")

	v.SetDefault("game.seed", 0)
	v.SetDefault("game.confuser", rc.Confuser)
	v.SetDefault("game.confuser_toggle", strings.ToLower(rc.ConfuserToggle.String()))
	v.SetDefault("game.max_len", rc.MaxLen)
	v.SetDefault("game.max_same_color", rc.Rules.MaxSameColor)
	v.SetDefault("game.min_distinct", rc.Rules.MinDistinct)
	v.SetDefault("game.retry_bound", rc.Rules.MaxAttempts)

	v.SetDefault("timing.debounce", "15ms")
	v.SetDefault("timing.min_press_interval", rc.MinPressInterval.String())
	v.SetDefault("timing.cue_on", rc.Timing.CueOn.String())
	v.SetDefault("timing.cue_on_min", rc.Timing.CueOnMin.String())
	v.SetDefault("timing.cue_gap", rc.Timing.CueGap.String())
	v.SetDefault("timing.cue_gap_min", rc.Timing.CueGapMin.String())
	v.SetDefault("timing.input_timeout", rc.Timing.InputTimeout.String())
	v.SetDefault("timing.input_timeout_min", rc.Timing.InputTimeoutMin.String())
	v.SetDefault("timing.speed_step", rc.Timing.SpeedStep)
	v.SetDefault("timing.speed_every", rc.Timing.SpeedEvery)

	v.SetDefault("cues.instructions", rc.InstructionsBudget.String())
	v.SetDefault("cues.my_turn", rc.MyTurnBudget.String())
	v.SetDefault("cues.your_turn", rc.YourTurnBudget.String())
	v.SetDefault("cues.feedback", rc.FeedbackBudget.String())
	v.SetDefault("cues.game_over", rc.GameOverBudget.String())
	v.SetDefault("cues.score", rc.ScoreBudget.String())
	v.SetDefault("cues.overlap_guard", rc.OverlapGuard.String())
	v.SetDefault("cues.folder_switch_guard", rc.FolderSwitchGuard.String())
	v.SetDefault("cues.post_game_grace", rc.PostGameGrace.String())

	v.SetDefault("invite.first", rc.InviteFirst.String())
	v.SetDefault("invite.min", rc.InviteMin.String())
	v.SetDefault("invite.max", rc.InviteMax.String())
	v.SetDefault("invite.clips", rc.InviteClips)

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.volume", audio.DefaultOptions().Volume)

	v.SetDefault("metrics.addr", "")

	v.SetDefault("sim.headless", false)
	v.SetDefault("sim.tick", "16ms")
	v.SetDefault("sim.scale", 1.0)
	v.SetDefault("sim.keys.red", "Q")
	v.SetDefault("sim.keys.blue", "W")
	v.SetDefault("sim.keys.green", "A")
	v.SetDefault("sim.keys.yellow", "S")
}

// Load reads path (or ./config.yaml when path is empty) and the
// environment. A missing default file is not an error; a missing explicit
// file is.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if _, ok := model.ParseColor(c.Game.ConfuserToggle); !ok {
		return fmt.Errorf("game.confuser_toggle: unknown color %q", c.Game.ConfuserToggle)
	}
	if c.Invite.Min > c.Invite.Max {
		return fmt.Errorf("invite.min %v exceeds invite.max %v", c.Invite.Min, c.Invite.Max)
	}
	if c.Timing.SpeedStep <= 0 || c.Timing.SpeedStep > 1 {
		return fmt.Errorf("timing.speed_step must be in (0, 1], got %v", c.Timing.SpeedStep)
	}
	if c.Timing.SpeedEvery <= 0 {
		return fmt.Errorf("timing.speed_every must be positive, got %d", c.Timing.SpeedEvery)
	}
	if c.Game.MaxLen <= 0 {
		return fmt.Errorf("game.max_len must be positive, got %d", c.Game.MaxLen)
	}
	return nil
}

// Round converts the settings to the state machine's configuration.
func (c *Config) Round() round.Config {
	toggle, _ := model.ParseColor(c.Game.ConfuserToggle)
	return round.Config{
		Timing: model.Timing{
			CueOn:           c.Timing.CueOn,
			CueOnMin:        c.Timing.CueOnMin,
			CueGap:          c.Timing.CueGap,
			CueGapMin:       c.Timing.CueGapMin,
			InputTimeout:    c.Timing.InputTimeout,
			InputTimeoutMin: c.Timing.InputTimeoutMin,
			SpeedStep:       c.Timing.SpeedStep,
			SpeedEvery:      c.Timing.SpeedEvery,
		},
		MaxLen: c.Game.MaxLen,
		Rules: sequence.Rules{
			MaxSameColor: c.Game.MaxSameColor,
			MinDistinct:  c.Game.MinDistinct,
			MaxAttempts:  c.Game.RetryBound,
		},
		MinPressInterval:   c.Timing.MinPressInterval,
		InstructionsBudget: c.Cues.Instructions,
		MyTurnBudget:       c.Cues.MyTurn,
		YourTurnBudget:     c.Cues.YourTurn,
		FeedbackBudget:     c.Cues.Feedback,
		GameOverBudget:     c.Cues.GameOver,
		ScoreBudget:        c.Cues.Score,
		OverlapGuard:       c.Cues.OverlapGuard,
		FolderSwitchGuard:  c.Cues.FolderSwitchGuard,
		PostGameGrace:      c.Cues.PostGameGrace,
		InviteFirst:        c.Invite.First,
		InviteMin:          c.Invite.Min,
		InviteMax:          c.Invite.Max,
		InviteClips:        c.Invite.Clips,
		Confuser:           c.Game.Confuser,
		ConfuserToggle:     toggle,
	}
}

// AudioOptions returns the output device settings.
func (c *Config) AudioOptions() audio.Options {
	return audio.Options{Volume: c.Audio.Volume}
}
