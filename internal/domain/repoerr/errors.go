// Package repoerr holds the errors repository implementations return for
// missing and conflicting rows. The usecase package exposes the same values,
// so errors.Is matches them against usecase.ErrNotFound and
// usecase.ErrConflict.
package repoerr

import "errors"

var (
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("conflict")
)
