// Package testutil builds fixtures shared by package tests.
package testutil

import (
	"archive/tar"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"
)

// Member is one file written into a fixture archive.
type Member struct {
	Name string
	Body string
}

// WriteTarGz writes members into dir/name as a gzip-compressed tar file and
// returns its path. Members whose name ends in "/" become directories.
func WriteTarGz(t testing.TB, dir, name string, members ...Member) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	gzw := gzip.NewWriter(f)
	tw := tar.NewWriter(gzw)
	for _, m := range members {
		h := &tar.Header{Name: m.Name, Mode: 0o644, Size: int64(len(m.Body)), Typeflag: tar.TypeReg}
		if len(m.Name) > 0 && m.Name[len(m.Name)-1] == '/' {
			h = &tar.Header{Name: m.Name, Mode: 0o755, Typeflag: tar.TypeDir}
		}
		if err := tw.WriteHeader(h); err != nil {
			t.Fatal(err)
		}
		if h.Typeflag == tar.TypeReg {
			if _, err := tw.Write([]byte(m.Body)); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gzw.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}
