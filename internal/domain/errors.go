// Package domain holds the error taxonomy shared by every cssmod component.
package domain

import "go.trai.ch/zerr"

var (
	// ErrNonConstantLiteral is returned when a marker call or tagged template carries
	// a stylesheet that cannot be resolved to a constant string at compile time.
	ErrNonConstantLiteral = zerr.New("expected a constant string as the stylesheet input")

	// ErrNonConstantLookupArgument is returned when a class-name lookup call is given an
	// argument that cannot be resolved to a constant string.
	ErrNonConstantLookupArgument = zerr.New("expected a constant string as the class name lookup")

	// ErrUnknownClassName is returned when a lookup names a class the bound stylesheet does not define.
	ErrUnknownClassName = zerr.New("unrecognised class name")

	// ErrCacheReadFailed is returned when the persistent name cache exists but cannot be read or decoded.
	ErrCacheReadFailed = zerr.New("failed to read class name cache")

	// ErrCacheWriteFailed is returned when the persistent name cache cannot be written back.
	ErrCacheWriteFailed = zerr.New("failed to write class name cache")

	// ErrInvalidStylesheet is returned when a stylesheet literal does not parse as CSS.
	ErrInvalidStylesheet = zerr.New("invalid stylesheet")

	// ErrInvalidSource is returned when a program source file does not parse.
	ErrInvalidSource = zerr.New("invalid program source")

	// ErrBundleWriteFailed is returned when an extraction bundle cannot be written.
	ErrBundleWriteFailed = zerr.New("failed to write stylesheet bundle")

	// ErrNoInputFiles is returned when discovery matches no source files.
	ErrNoInputFiles = zerr.New("no input files matched")
)
