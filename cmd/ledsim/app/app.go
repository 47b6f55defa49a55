// Package app implements the scene capture pipeline: it renders a scene's
// effect stack frame by frame on a simulated clock and persists the frames
// to the capture store. The simulated clock makes captures deterministic;
// frame N is rendered at exactly N/fps seconds no matter how fast the
// machine is.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/alphamatrix/ledgrid/internal/matrix"
	"github.com/alphamatrix/ledgrid/internal/scene"
	"github.com/alphamatrix/ledgrid/internal/storage"
	"github.com/alphamatrix/ledgrid/pkg/ledcolor"
)

// Frames travel to the store in batches of this size.
const captureBatchSize = 32

// Run executes one capture, or keeps recapturing on scene changes when
// watching is enabled.
func Run(ctx context.Context, config *Config, logger *slog.Logger) (err error) {
	store := storage.NewSqliteStore(config.DBPath)
	defer closeWithError(store, &err)

	if config.Watch {
		return watch(ctx, config, store, logger)
	}

	_, err = capture(ctx, config, store, logger)
	return err
}

// capture renders one session from the scene file into the store and
// returns the new session ID.
func capture(ctx context.Context, config *Config, store storage.Store, logger *slog.Logger) (sessionID int64, err error) {
	data, err := os.ReadFile(config.ScenePath)
	if err != nil {
		return 0, fmt.Errorf("reading scene file: %w", err)
	}
	sc, err := scene.Parse(data)
	if err != nil {
		return 0, err
	}
	mgr, err := sc.Build()
	if err != nil {
		return 0, err
	}

	total := config.Frames
	if total == 0 {
		total = int(sc.Duration.Std() * time.Duration(sc.FrameRate) / time.Second)
	}

	sessionID, err = store.CreateSession(ctx, sc.Name, sc.Matrix.Width, sc.Matrix.Height, sc.FrameRate, string(data))
	if err != nil {
		return 0, err
	}

	logger.Info("capture started",
		slog.Int64("session", sessionID),
		slog.String("scene", sc.Name),
		slog.String("size", fmt.Sprintf("%dx%d", sc.Matrix.Width, sc.Matrix.Height)),
		slog.Int("fps", sc.FrameRate),
		slog.Int("frames", total),
	)

	start := time.Now()
	rendered, err := renderFrames(ctx, sc, mgr, store, sessionID, total)
	if err != nil {
		return sessionID, err
	}

	frameBytes := uint64(rendered) * uint64(sc.Matrix.Width*sc.Matrix.Height*4)
	logger.Info("capture finished",
		slog.Int64("session", sessionID),
		slog.String("frames", humanize.Comma(int64(rendered))),
		slog.String("pixel_data", humanize.Bytes(frameBytes)),
		slog.Duration("elapsed", time.Since(start).Round(time.Millisecond)),
	)
	return sessionID, nil
}

// renderFrames runs the producer/writer pipeline: the frame loop renders
// into a reused matrix and hands copies to a writer goroutine that batches
// them into the store.
func renderFrames(ctx context.Context, sc *scene.Scene, mgr renderer, store storage.Store, sessionID int64, total int) (rendered int, err error) {
	m := matrix.New(sc.Matrix.Width, sc.Matrix.Height)
	frames := make(chan *storage.Frame, captureBatchSize)

	var wg sync.WaitGroup
	var writeErr error

	wg.Add(1)
	go func() {
		defer wg.Done()

		batch := make([]*storage.Frame, 0, captureBatchSize)
		flush := func() {
			if len(batch) == 0 || writeErr != nil {
				return
			}
			if err := store.StoreFrames(ctx, sessionID, batch); err != nil {
				writeErr = err
			}
			batch = batch[:0]
		}

		for f := range frames {
			batch = append(batch, f)
			if len(batch) == captureBatchSize {
				flush()
			}
		}
		flush()
	}()

	for n := 0; n < total; n++ {
		if ctx.Err() != nil {
			break
		}

		now := time.Duration(n) * time.Second / time.Duration(sc.FrameRate)
		mgr.Frame(now, m)

		pixels := append([]ledcolor.RGBA(nil), m.Pixels()...)
		frames <- &storage.Frame{
			Index:       n,
			TimestampMS: now.Milliseconds(),
			Width:       sc.Matrix.Width,
			Height:      sc.Matrix.Height,
			Pixels:      pixels,
		}
		rendered++
	}

	close(frames)
	wg.Wait()

	if writeErr != nil {
		return rendered, fmt.Errorf("storing frames: %w", writeErr)
	}
	if err = ctx.Err(); err != nil {
		return rendered, fmt.Errorf("capture interrupted: %w", err)
	}
	return rendered, nil
}

// renderer is the slice of the effect manager the frame loop needs.
type renderer interface {
	Frame(now time.Duration, m *matrix.Matrix)
}

func closeWithError(cl interface{ Close() error }, err *error) {
	if cErr := cl.Close(); cErr != nil && *err == nil {
		*err = cErr
	}
}
