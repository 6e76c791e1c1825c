package tail

import "fmt"

// FileError is a non-fatal failure to access one monitored file. The file
// contributes no lines to the scrape in which it occurred.
type FileError struct {
	// Op is the failed operation ("open", "stat", "read").
	Op string

	// Path is the monitored file.
	Path string

	// Err is the underlying error.
	Err error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
