package storage

import (
	"context"
	"database/sql"
	"fmt"
	"math"
)

const defaultBatchSize = 64

// Order is the frame iteration direction.
type Order int

const (
	// OrderAsc iterates frames from first to last.
	OrderAsc Order = iota

	// OrderDesc iterates frames from last to first.
	OrderDesc
)

// ReaderOption configures a FrameReader.
type ReaderOption func(*FrameReader)

// WithBatchSize sets how many frames one page fetch loads. Values below 1
// keep the default.
func WithBatchSize(n int) ReaderOption {
	return func(r *FrameReader) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

// WithFrameRange restricts iteration to frame indices in [from, to], both
// inclusive.
func WithFrameRange(from, to int) ReaderOption {
	return func(r *FrameReader) {
		r.from = &from
		r.to = &to
	}
}

// WithOrder sets the iteration direction.
func WithOrder(o Order) ReaderOption {
	return func(r *FrameReader) {
		r.order = o
	}
}

// FrameReader iterates a session's frames in batches, keyset-paginated on
// the frame index so a page fetch never scans past its window. A reader is
// for single-goroutine use.
type FrameReader struct {
	db        *sql.DB
	sessionID int64
	session   *Session
	batchSize int
	from      *int
	to        *int
	order     Order

	batch     []*Frame
	pos       int
	cursor    int
	exhausted bool
	err       error
}

func newFrameReader(ctx context.Context, db *sql.DB, sessionID int64, opts ...ReaderOption) (*FrameReader, error) {
	r := &FrameReader{
		db:        db,
		sessionID: sessionID,
		batchSize: defaultBatchSize,
	}
	for _, opt := range opts {
		opt(r)
	}

	// The session row supplies the frame geometry.
	sess, err := scanSession(db.QueryRowContext(ctx, selectSessionSQL, sessionID))
	if err != nil {
		return nil, fmt.Errorf("loading session %d: %w", sessionID, err)
	}
	r.session = sess

	if r.order == OrderAsc {
		r.cursor = math.MinInt
	} else {
		r.cursor = math.MaxInt
	}
	return r, nil
}

// Session returns the session the reader iterates over.
func (r *FrameReader) Session() *Session { return r.session }

// Next advances to the next frame, fetching the next page when the current
// one is drained. It returns false at the end of the range or on error.
func (r *FrameReader) Next(ctx context.Context) bool {
	if r.err != nil {
		return false
	}
	if r.pos+1 < len(r.batch) {
		r.pos++
		return true
	}
	if r.exhausted {
		return false
	}
	if err := r.fetchBatch(ctx); err != nil {
		r.err = err
		return false
	}
	if len(r.batch) == 0 {
		r.exhausted = true
		return false
	}
	r.pos = 0
	return true
}

// Frame returns the current frame. Only valid after Next returned true.
func (r *FrameReader) Frame() *Frame {
	if r.pos < 0 || r.pos >= len(r.batch) {
		return nil
	}
	return r.batch[r.pos]
}

// Err returns the first error hit during iteration.
func (r *FrameReader) Err() error { return r.err }

// Close ends the iteration. Pages are fetched eagerly, so there is no open
// cursor to release; Close only blocks further Next calls.
func (r *FrameReader) Close() error {
	r.exhausted = true
	r.batch = nil
	return nil
}

const (
	selectFramesAscSQL = `
SELECT
    frame_index,
    timestamp_ms,
    pixels
FROM frames
WHERE
    session_id = ?
    AND frame_index > ?
    AND frame_index <= ?
ORDER BY frame_index
LIMIT ?`

	selectFramesDescSQL = `
SELECT
    frame_index,
    timestamp_ms,
    pixels
FROM frames
WHERE
    session_id = ?
    AND frame_index < ?
    AND frame_index >= ?
ORDER BY frame_index DESC
LIMIT ?`
)

func (r *FrameReader) fetchBatch(ctx context.Context) (err error) {
	query := selectFramesAscSQL
	bound := math.MaxInt
	if r.order == OrderAsc {
		if r.to != nil {
			bound = *r.to
		}
		if r.from != nil && r.cursor < *r.from-1 {
			r.cursor = *r.from - 1
		}
	} else {
		query = selectFramesDescSQL
		bound = math.MinInt
		if r.from != nil {
			bound = *r.from
		}
		if r.to != nil && r.cursor > *r.to+1 {
			r.cursor = *r.to + 1
		}
	}

	rows, err := r.db.QueryContext(ctx, query, r.sessionID, r.cursor, bound, r.batchSize)
	if err != nil {
		return fmt.Errorf("querying frames: %w", err)
	}
	defer closeWithError(rows, &err)

	r.batch = r.batch[:0]
	for rows.Next() {
		var (
			index       int
			timestampMS int64
			blob        []byte
		)
		if err = rows.Scan(&index, &timestampMS, &blob); err != nil {
			return fmt.Errorf("scanning frame: %w", err)
		}
		pixels, decodeErr := DecodePixels(blob)
		if decodeErr != nil {
			return fmt.Errorf("frame %d: %w", index, decodeErr)
		}
		r.batch = append(r.batch, &Frame{
			Index:       index,
			TimestampMS: timestampMS,
			Width:       r.session.Width,
			Height:      r.session.Height,
			Pixels:      pixels,
		})
		r.cursor = index
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("iterating frames: %w", err)
	}
	return nil
}
