package build

import (
	"errors"
	"fmt"

	"stylescope/scoper"
)

var (
	ErrPhase              = errors.New("build phase is out of order")
	ErrAborted            = errors.New("build has been aborted")
	ErrScopeNameCollision = errors.New("scope name collision")
	ErrInvalidModuleName  = errors.New("invalid module name")
	ErrOutputIsDir        = errors.New("output file is a directory")
	ErrOutputNotDir       = errors.New("output directory is not a directory")
)

// HashCollisionError is returned when two different scopes produce the same
// hash and collision policy does not allow that.
type HashCollisionError struct {
	Scope string
	Other string
	Hash  scoper.Hash
}

func (e *HashCollisionError) Error() string {
	return fmt.Sprintf("scope %q has the same hash %q as scope %q", e.Scope, e.Hash, e.Other)
}

// ModuleCollisionError is returned when side module is loaded more than once
// and collision policy does not allow merging.
type ModuleCollisionError struct {
	Module string
}

func (e *ModuleCollisionError) Error() string {
	return fmt.Sprintf("side module %q is already loaded", e.Module)
}

// FilesystemError wraps any OS level failure.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("unable to %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

func fsError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &FilesystemError{Op: op, Path: path, Err: err}
}
