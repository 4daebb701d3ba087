// Package filemap maps whole files into memory read-only.
package filemap

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Mapping is a read-only view of a file's contents. It must be released exactly once.
type Mapping struct {
	data []byte
}

// Map opens the file and maps its first size bytes. The file descriptor is closed right
// after mapping, the mapping stays valid on its own. Empty files aren't mapped at all.
func Map(path string, size int64) (*Mapping, error) {
	if size == 0 {
		return new(Mapping), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "filemap: open")
	}

	// pages past the end of file can't be accessed, so the file must not have shrunk
	// since its size was taken
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, errors.Wrap(err, "filemap: stat")
	}

	if info.Size() < size {
		_ = file.Close()
		return nil, errors.Errorf("filemap: %s is %d bytes long, expected %d", path, info.Size(), size)
	}

	data, err := unix.Mmap(int(file.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_PRIVATE)
	closeErr := file.Close()
	if err != nil {
		return nil, errors.Wrapf(err, "filemap: mmap %s", path)
	}

	if closeErr != nil {
		_ = unix.Munmap(data)
		return nil, errors.Wrap(closeErr, "filemap: close")
	}

	return &Mapping{data: data}, nil
}

// Bytes returns the mapped contents. The slice must not be used after Release.
func (m *Mapping) Bytes() []byte {
	return m.data
}

func (m *Mapping) Len() int {
	return len(m.data)
}

// Release unmaps the memory. Subsequent calls are no-op.
func (m *Mapping) Release() error {
	if m.data == nil {
		return nil
	}

	data := m.data
	m.data = nil

	return errors.Wrap(unix.Munmap(data), "filemap: munmap")
}
