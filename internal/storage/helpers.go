package storage

import (
	"database/sql"
	"errors"
)

func closeWithError(cl interface{ Close() error }, err *error) {
	if cErr := cl.Close(); cErr != nil && *err == nil {
		*err = cErr
	}
}

// rollbackWithError is deferred around transactions; after a successful
// commit the rollback reports ErrTxDone, which is not an error here.
func rollbackWithError(rb interface{ Rollback() error }, err *error) {
	cErr := rb.Rollback()
	if cErr != nil && !errors.Is(cErr, sql.ErrTxDone) && *err == nil {
		*err = cErr
	}
}
