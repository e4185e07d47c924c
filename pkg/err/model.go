package err

import (
	"errors"
	"fmt"
)

// Document decoding errors.
var (
	ErrDecode              = errors.New("model: cannot decode document")
	ErrUnsupportedDocument = errors.New("model: unsupported document")
)

// ErrDecodeFile reports that the document stored at path could not be read
// or decoded into the generic value model.
func ErrDecodeFile(path string, cause error) error {
	return fmt.Errorf("%w %s: %w", ErrDecode, path, cause)
}
