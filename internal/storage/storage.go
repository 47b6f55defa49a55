// Package storage persists capture sessions and their rendered frames in an
// sqlite database. Writes go through a WAL connection, reads through a
// separate read-only connection; both are opened lazily on first use. The
// frame index is created when the store closes, so bulk capture inserts do
// not pay for index maintenance.
package storage

import (
	"context"
)

// Store is the capture persistence interface.
type Store interface {
	// CreateSession opens a new capture session and returns its ID. The
	// config payload is stored verbatim for strings and byte slices and
	// JSON-marshaled otherwise; nil stores NULL.
	CreateSession(ctx context.Context, name string, width, height, frameRate int, config any) (int64, error)

	// Session returns one session by ID.
	Session(ctx context.Context, id int64) (*Session, error)

	// Sessions returns all sessions in creation order.
	Sessions(ctx context.Context) ([]*Session, error)

	// FrameCount returns the number of frames stored for a session.
	FrameCount(ctx context.Context, sessionID int64) (int, error)

	// StoreFrame persists a single frame.
	StoreFrame(ctx context.Context, sessionID int64, frame *Frame) error

	// StoreFrames persists a batch of frames in one transaction.
	StoreFrames(ctx context.Context, sessionID int64, frames []*Frame) error

	// Frames returns a paginated reader over a session's frames.
	Frames(ctx context.Context, sessionID int64, opts ...ReaderOption) (*FrameReader, error)

	// Close releases both database handles, creating the frame index
	// first if anything was written.
	Close() error
}
