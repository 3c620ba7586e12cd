package fs

import (
	"io"
	"os"
)

// File is a read-only file opened on a file-system. It is modelled after the default 'os.File' from the standard
// library.
type File interface {
	io.ReadSeekCloser
	Name() string
	Stat() (os.FileInfo, error)
}
