package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bloeys/glw/internal/sdlctx"
	"github.com/pelletier/go-toml/v2"
)

type config struct {
	Window sdlctx.Config `toml:"window"`

	// Frames=0 runs until the window is closed
	Frames int `toml:"frames"`
	// Offscreen renders into a framebuffer that is then blitted to the window
	Offscreen bool `toml:"offscreen"`
	Debug     bool `toml:"debug"`
}

func defaultConfig() config {
	return config{
		Window:    sdlctx.DefaultConfig(),
		Offscreen: true,
	}
}

func decodeConfig(r io.Reader) (config, error) {

	cfg := defaultConfig()

	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {

		var strictErr *toml.StrictMissingError
		if errors.As(err, &strictErr) {
			return cfg, fmt.Errorf("unknown config keys:\n%s", strictErr.String())
		}

		return cfg, err
	}

	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		return cfg, fmt.Errorf("window size must be positive, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}

	if cfg.Frames < 0 {
		return cfg, fmt.Errorf("frames must not be negative, got %d", cfg.Frames)
	}

	return cfg, nil
}

// loadConfig returns the defaults when path is empty
func loadConfig(path string) (config, error) {

	if path == "" {
		return defaultConfig(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return config{}, err
	}
	defer f.Close()

	cfg, err := decodeConfig(f)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config '%s': %w", path, err)
	}

	return cfg, nil
}
