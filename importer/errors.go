package importer

import "errors"

var (
	// ErrInvalidConfig is returned when batch size or report interval is not positive.
	ErrInvalidConfig = errors.New("invalid import configuration")

	// ErrPartialImport wraps a storage failure that happened after some batches were stored.
	ErrPartialImport = errors.New("import stopped part way")
)
