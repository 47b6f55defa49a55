package storage

import (
	_ "embed"
)

const (
	insertSessionSQL = `
INSERT INTO sessions (
                      start_time,
                      name,
                      width,
                      height,
                      frame_rate,
                      config)
VALUES (CURRENT_TIMESTAMP, ?, ?, ?, ?, ?)`

	selectSessionSQL = `
SELECT
    id,
    start_time,
    name,
    width,
    height,
    frame_rate,
    config
FROM sessions
WHERE
    id = ?`

	selectSessionsSQL = `
SELECT
    id,
    start_time,
    name,
    width,
    height,
    frame_rate,
    config
FROM sessions
ORDER BY id`

	countFramesSQL = `
SELECT COUNT(*)
FROM frames
WHERE session_id = ?`

	insertFrameSQL = `
INSERT INTO frames (session_id,
                    frame_index,
                    timestamp_ms,
                    pixels)
VALUES `

	// The index is created once at Close so capture inserts run unindexed.
	initIndexesSQL = `
CREATE INDEX IF NOT EXISTS idx_frames_session_index
    ON frames (session_id, frame_index)`
)

//go:embed schema.sql
var initSchemaSQL string
