// Package archive reads the members of the gzip-compressed tar file that
// carries the sentiment splits.
package archive

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"io"
	"os"
	"strings"
)

// Logical member names. Each is used both as the substring searched for and
// as the fallback name when nothing matches.
const (
	TrainMember     = "train.tsv"
	DevMember       = "dev.tsv"
	UnlabeledMember = "unlabeled.tsv"
)

// Archive is an open .tar.gz file. It holds a single file handle; members
// are streamed by rewinding that handle and decompressing again.
type Archive struct {
	path    string
	f       *os.File
	gzr     *gzip.Reader
	members []string
}

// Open opens the archive at path and lists its regular-file members.
func Open(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	a := &Archive{path: path, f: f}
	err = a.walk(func(h *tar.Header, _ io.Reader) (bool, error) {
		if h.FileInfo().Mode().IsRegular() {
			a.members = append(a.members, h.Name)
		}
		return false, nil
	})
	if err != nil {
		_ = a.Close()
		return nil, &Error{Path: path, Err: err}
	}
	return a, nil
}

// Path returns the archive path.
func (a *Archive) Path() string { return a.path }

// Members returns the regular-file member names in archive order.
func (a *Archive) Members() []string {
	out := make([]string, len(a.members))
	copy(out, a.members)
	return out
}

// Resolve returns the first member whose name contains substr, or fallback
// when none does. A fallback that is not in the archive fails later, in
// OpenMember.
func (a *Archive) Resolve(substr, fallback string) string {
	for _, m := range a.members {
		if strings.Contains(m, substr) {
			return m
		}
	}
	return fallback
}

// OpenMember returns a reader over the named member. The reader is valid
// until the next call to OpenMember or Close.
func (a *Archive) OpenMember(name string) (io.Reader, error) {
	var found io.Reader
	err := a.walk(func(h *tar.Header, r io.Reader) (bool, error) {
		if h.Name != name || h.FileInfo().IsDir() {
			return false, nil
		}
		found = r
		return true, nil
	})
	if err != nil {
		return nil, &Error{Path: a.path, Member: name, Err: err}
	}
	if found == nil {
		return nil, &Error{Path: a.path, Member: name, Err: ErrMemberNotFound}
	}
	return found, nil
}

// Close releases the file handle. It is safe to call more than once.
func (a *Archive) Close() error {
	if a.gzr != nil {
		_ = a.gzr.Close()
		a.gzr = nil
	}
	if a.f == nil {
		return nil
	}
	err := a.f.Close()
	a.f = nil
	return err
}

// walk rewinds the file and visits entries until visit reports stop.
func (a *Archive) walk(visit func(h *tar.Header, r io.Reader) (bool, error)) error {
	if a.f == nil {
		return os.ErrClosed
	}
	if _, err := a.f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if a.gzr == nil {
		gzr, err := gzip.NewReader(a.f)
		if err != nil {
			return err
		}
		a.gzr = gzr
	} else if err := a.gzr.Reset(a.f); err != nil {
		return err
	}

	tr := tar.NewReader(a.gzr)
	for {
		h, err := tr.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		stop, err := visit(h, tr)
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}
}
