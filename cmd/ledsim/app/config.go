package app

import (
	"errors"
	"flag"
)

// Config holds the simulator's command line configuration.
type Config struct {
	ScenePath string
	DBPath    string
	Frames    int
	Watch     bool
	Verbose   bool
}

// NewConfigFromCLI parses and validates the command line flags.
func NewConfigFromCLI() (*Config, error) {
	c := &Config{}

	flag.StringVar(&c.ScenePath, "scene", "", "Path to the scene file")
	flag.StringVar(&c.DBPath, "db", "capture.db", "Path to the capture database")
	flag.IntVar(&c.Frames, "frames", 0, "Number of frames to capture (0 derives the count from the scene duration)")
	flag.BoolVar(&c.Watch, "watch", false, "Watch the scene file and recapture on change")
	flag.BoolVar(&c.Verbose, "v", false, "Enable debug logging")
	flag.Parse()

	var err error
	if c.ScenePath == "" {
		err = errors.New("scene file is required")
	} else if c.Frames < 0 {
		err = errors.New("frame count must not be negative")
	}

	if err != nil {
		flag.Usage()
		return nil, err
	}
	return c, nil
}
