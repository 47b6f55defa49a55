package app

import (
	"errors"
	"flag"
)

// Config holds the exporter's command line configuration.
type Config struct {
	DBPath    string
	SessionID int64
	List      bool
	Frame     int
	Filmstrip int
	GIF       bool
	Output    string
	Annotate  bool
	CellSize  int
	Verbose   bool
}

// NewConfigFromCLI parses and validates the command line flags. Exactly one
// of the list, frame, filmstrip and gif modes must be selected.
func NewConfigFromCLI() (*Config, error) {
	c := &Config{}

	flag.StringVar(&c.DBPath, "db", "", "Path to the capture database")
	flag.Int64Var(&c.SessionID, "session", 0, "Session ID (0 selects the most recent session)")
	flag.BoolVar(&c.List, "list", false, "List capture sessions")
	flag.IntVar(&c.Frame, "frame", -1, "Export a single frame as PNG")
	flag.IntVar(&c.Filmstrip, "filmstrip", 0, "Export all frames as a montage PNG with this many columns")
	flag.BoolVar(&c.GIF, "gif", false, "Export all frames as an animated GIF")
	flag.StringVar(&c.Output, "o", "", "Path to the output file")
	flag.BoolVar(&c.Annotate, "annotate", false, "Add a caption bar with session name, frame index and timestamp")
	flag.IntVar(&c.CellSize, "cell", 0, "Cell size in output pixels (0 keeps the default)")
	flag.BoolVar(&c.Verbose, "v", false, "Enable debug logging")
	flag.Parse()

	modes := 0
	for _, on := range []bool{c.List, c.Frame >= 0, c.Filmstrip > 0, c.GIF} {
		if on {
			modes++
		}
	}

	var err error
	if c.DBPath == "" {
		err = errors.New("db path is required")
	} else if modes != 1 {
		err = errors.New("exactly one of -list, -frame, -filmstrip or -gif is required")
	} else if c.Filmstrip < 0 {
		err = errors.New("filmstrip column count must be positive")
	}

	if err != nil {
		flag.Usage()
		return nil, err
	}

	if c.Output == "" {
		switch {
		case c.Frame >= 0:
			c.Output = "frame.png"
		case c.Filmstrip > 0:
			c.Output = "filmstrip.png"
		case c.GIF:
			c.Output = "capture.gif"
		}
	}
	return c, nil
}
