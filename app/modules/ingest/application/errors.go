package ingestservice

import "errors"

var (
	ErrInvalidFilenameFormat = errors.New("invalid filename format")
	ErrNoFieldMapping        = errors.New("no field mapping for source format")
)
