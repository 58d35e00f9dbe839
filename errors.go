// File: yamlhandler/errors.go
package yamlhandler

import "errors"

var (
	// ErrInvalidPath reports a path or map key that yields no usable segments,
	// such as an empty string or a string made only of separators.
	ErrInvalidPath = errors.New("path has no segments")

	// ErrInvalidDocument reports document text the codec could not parse, or a
	// document whose top level is not a mapping.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrSerialization reports a registered serializer that failed to convert
	// an object to its map form or back.
	ErrSerialization = errors.New("serialization failed")
)
