package sqlconfig

import (
	"database/sql"
	"errors"
)

// ErrNotFound is returned when a row addressed by key does not exist.
var ErrNotFound = errors.New("record not found")

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
