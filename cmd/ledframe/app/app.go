// Package app implements the capture export tool: session listing and
// rendering stored frames to PNG, filmstrip montages and animated GIFs.
package app

import (
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/alphamatrix/ledgrid/internal/matrix"
	"github.com/alphamatrix/ledgrid/internal/render"
	"github.com/alphamatrix/ledgrid/internal/storage"
)

// Height of the caption strip reserved under annotated panels.
const captionHeight = 24

// Run dispatches to the selected export mode.
func Run(ctx context.Context, config *Config, logger *slog.Logger) (err error) {
	if _, err = os.Stat(config.DBPath); err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	store := storage.NewSqliteStore(config.DBPath)
	defer closeWithError(store, &err)

	if config.List {
		return listSessions(ctx, store, os.Stdout)
	}

	sess, err := resolveSession(ctx, store, config.SessionID)
	if err != nil {
		return err
	}
	logger.Debug("exporting session",
		slog.Int64("session", sess.ID),
		slog.String("name", sess.Name),
	)

	switch {
	case config.Frame >= 0:
		return exportFrame(ctx, store, sess, config)
	case config.Filmstrip > 0:
		return exportFilmstrip(ctx, store, sess, config)
	default:
		return exportGIF(ctx, store, sess, config)
	}
}

// listSessions prints a session table with frame counts.
func listSessions(ctx context.Context, store storage.Store, out io.Writer) error {
	sessions, err := store.Sessions(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tNAME\tSIZE\tFPS\tFRAMES\tPIXEL DATA")
	for _, s := range sessions {
		count, err := store.FrameCount(ctx, s.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%dx%d\t%d\t%s\t%s\n",
			s.ID,
			humanize.Time(s.StartTime),
			s.Name,
			s.Width, s.Height,
			s.FrameRate,
			humanize.Comma(int64(count)),
			humanize.Bytes(uint64(count)*uint64(s.Width*s.Height*4)),
		)
	}
	return tw.Flush()
}

// resolveSession loads the requested session, or the most recent one when
// id is 0.
func resolveSession(ctx context.Context, store storage.Store, id int64) (*storage.Session, error) {
	if id > 0 {
		return store.Session(ctx, id)
	}

	sessions, err := store.Sessions(ctx)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, fmt.Errorf("database has no capture sessions")
	}
	return sessions[len(sessions)-1], nil
}

func exportFrame(ctx context.Context, store storage.Store, sess *storage.Session, config *Config) error {
	frames, err := renderSession(ctx, store, sess, config, config.Frame, config.Frame)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("session %d has no frame %d", sess.ID, config.Frame)
	}
	return writeImageFile(config.Output, func(w io.Writer) error {
		return render.WritePNG(w, frames[0])
	})
}

func exportFilmstrip(ctx context.Context, store storage.Store, sess *storage.Session, config *Config) error {
	frames, err := renderSession(ctx, store, sess, config, -1, -1)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("session %d has no frames", sess.ID)
	}
	return writeImageFile(config.Output, func(w io.Writer) error {
		return render.WriteFilmstrip(w, frames, config.Filmstrip)
	})
}

func exportGIF(ctx context.Context, store storage.Store, sess *storage.Session, config *Config) error {
	frames, err := renderSession(ctx, store, sess, config, -1, -1)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("session %d has no frames", sess.ID)
	}

	// GIF delays run in hundredths of a second.
	delay := 100 / max(sess.FrameRate, 1)
	return writeImageFile(config.Output, func(w io.Writer) error {
		return render.WriteGIF(w, frames, delay)
	})
}

// renderSession reads the frame range (from < 0 selects everything) and
// renders each frame as a panel image, captioned when annotation is on.
func renderSession(ctx context.Context, store storage.Store, sess *storage.Session, config *Config, from, to int) ([]*image.RGBA, error) {
	opts := []render.Option{}
	if config.CellSize > 0 {
		opts = append(opts, render.WithCellSize(config.CellSize))
	}

	var annotator *render.Annotator
	if config.Annotate {
		var err error
		if annotator, err = render.NewAnnotator(); err != nil {
			return nil, err
		}
		opts = append(opts, render.WithFooter(captionHeight))
	}
	renderer := render.NewCellRenderer(opts...)

	readerOpts := []storage.ReaderOption{}
	if from >= 0 {
		readerOpts = append(readerOpts, storage.WithFrameRange(from, to))
	}
	r, err := store.Frames(ctx, sess.ID, readerOpts...)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var frames []*image.RGBA
	for r.Next(ctx) {
		f := r.Frame()
		m, err := matrix.FromPixels(f.Width, f.Height, f.Pixels)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", f.Index, err)
		}

		img := renderer.Render(m)
		if annotator != nil {
			caption := fmt.Sprintf("%s #%d @%s", sess.Name, f.Index, time.Duration(f.TimestampMS)*time.Millisecond)
			if err = annotator.Caption(img, caption); err != nil {
				return nil, fmt.Errorf("frame %d: %w", f.Index, err)
			}
		}
		frames = append(frames, img)
	}
	if err = r.Err(); err != nil {
		return nil, err
	}
	return frames, nil
}

func writeImageFile(path string, encode func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer closeWithError(f, &err)

	return encode(f)
}

func closeWithError(cl interface{ Close() error }, err *error) {
	if cErr := cl.Close(); cErr != nil && *err == nil {
		*err = cErr
	}
}
