package parsers

import "errors"

var (
	ErrUnsupportedFileFormat   = errors.New("unsupported file format")
	ErrMalformedCSVStructure   = errors.New("malformed CSV structure")
	ErrMalformedExcelStructure = errors.New("malformed Excel structure")
)
