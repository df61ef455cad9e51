package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an update targets a document that does not
// exist.
var ErrNotFound = errors.New("document not found")

// DuplicateKeyError reports a unique-index conflict. The only unique index in
// the schema is ux_users_email, so in practice this means a second user with
// an already-registered email.
type DuplicateKeyError struct {
	Collection string
	Index      string
	Value      string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %q on %s (%s)", e.Value, e.Collection, e.Index)
}

// IsDuplicateKey reports whether err is a unique-index conflict.
func IsDuplicateKey(err error) bool {
	var dup *DuplicateKeyError
	return errors.As(err, &dup)
}
