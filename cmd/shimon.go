package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/ingyamilmolinar/shimon/core/engine"
	"github.com/ingyamilmolinar/shimon/core/input"
	"github.com/ingyamilmolinar/shimon/core/model"
	"github.com/ingyamilmolinar/shimon/core/round"
	"github.com/ingyamilmolinar/shimon/internal/audio"
	"github.com/ingyamilmolinar/shimon/internal/config"
	"github.com/ingyamilmolinar/shimon/internal/effects"
	game_log "github.com/ingyamilmolinar/shimon/internal/log"
	"github.com/ingyamilmolinar/shimon/internal/metrics"
	"github.com/ingyamilmolinar/shimon/internal/sim"
)

// player is what the machine and main need from an audio output.
type player interface {
	round.Audio
	SetOnFinished(func(model.Track))
	Close() error
}

func openAudio(cfg *config.Config, logger *game_log.Logger) player {
	if !cfg.Audio.Enabled {
		logger.Infof("[AUDIO] disabled by configuration")
		return audio.Silent{}
	}
	d, err := audio.New(cfg.AudioOptions(), logger)
	if err != nil {
		logger.Warnf("[AUDIO] %v; continuing without sound", err)
		return audio.Silent{}
	}
	return d
}

func main() {
	configPath := flag.String("config", "", "config file (default ./config.yaml if present)")
	envFile := flag.String("env", ".env", "dotenv file loaded before the configuration")
	headless := flag.Bool("headless", false, "run without a window (attract mode only)")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: %s: %v", *envFile, err)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *headless {
		cfg.Sim.Headless = true
	}

	logger := game_log.New(os.Stderr, game_log.LevelFromString(cfg.Log.Level))

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Infof("seed %d", seed)
	rng := rand.New(rand.NewSource(seed))

	layout := sim.DefaultLayout()
	keys, err := sim.ParseKeyMap([model.ColorCount]string{
		model.Red:    cfg.Sim.Keys.Red,
		model.Blue:   cfg.Sim.Keys.Blue,
		model.Green:  cfg.Sim.Keys.Green,
		model.Yellow: cfg.Sim.Keys.Yellow,
	})
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	var pins input.PinReader = sim.NewPins(keys, layout)
	if cfg.Sim.Headless {
		pins = input.PinFunc(func(model.Color) bool { return false })
	}

	panel := &sim.Panel{}
	in := input.NewDebouncer(pins, cfg.Timing.Debounce)
	fx := effects.NewPlayer(effects.DefaultConfig(), panel, rng, logger.Tagged("FX"))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector, err := metrics.New(reg, logger)
	if err != nil {
		log.Fatalf("metrics: %v", err)
	}
	collector.SetConfuser(cfg.Game.Confuser)

	out := openAudio(cfg, logger)
	defer out.Close()

	m := round.New(cfg.Round(), in, round.IO{
		Lights:   panel,
		Audio:    out,
		Effects:  fx,
		Observer: collector,
	}, rng, logger)
	out.SetOnFinished(m.Finished)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Addr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Addr, reg, logger); err != nil {
				logger.Errorf("%v", err)
			}
		}()
	}

	eng := engine.New(m, in, panel, logger, time.Now())

	if cfg.Sim.Headless {
		if err := eng.Run(ctx, cfg.Sim.Tick, time.Now); err != nil && !errors.Is(err, context.Canceled) {
			log.Fatal(err)
		}
		return
	}

	g := sim.New(eng, panel, layout, logger)
	scale := cfg.Sim.Scale
	if scale <= 0 {
		scale = 1
	}
	ebiten.SetWindowSize(int(float64(layout.Width)*scale), int(float64(layout.Height)*scale))
	ebiten.SetWindowTitle("Shimon")
	if cfg.Sim.Tick > 0 {
		ebiten.SetTPS(int(time.Second / cfg.Sim.Tick))
	}

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
