// Copyright (c) 2013 Uwe Hoffmann. All rights reserved.

/*
Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are
met:

   * Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.
   * Redistributions in binary form must reproduce the above
copyright notice, this list of conditions and the following disclaimer
in the documentation and/or other materials provided with the
distribution.
   * Neither the name of Google Inc. nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
OWNER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/

// Package archive opens stealer-log archives and classifies, filters and
// groups their entries ahead of parsing.
package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/uwedeportivo/torrentzip/czip"

	"github.com/null8bit/log-archive-processor/types"
)

// Kind identifies the archive container format.
type Kind int

const (
	KindUnsupported Kind = iota
	KindZip
)

func kindForPath(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return KindZip
	default:
		return KindUnsupported
	}
}

// Reader gives access to the entries of one on-disk archive. The only
// supported container today is ZIP, opened with czip rather than the
// standard library's archive/zip, matching the teacher's own preference
// for czip over archive/zip when reading torrent-zip style archives.
type Reader struct {
	path string
	kind Kind
	zr   *czip.ReadCloser
	byName map[string]*czip.File
	names  []string
}

// Open opens the archive at path. It returns types.NotFoundError if the
// path does not exist and types.UnsupportedError if the container format
// isn't ZIP.
func Open(path string) (*Reader, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, types.NotFoundError.NewWith(fmt.Sprintf("archive not found: %s", path))
		}
		return nil, types.IOError.NewWith(fmt.Sprintf("cannot stat archive: %s: %v", path, err))
	}

	kind := kindForPath(path)
	if kind != KindZip {
		return nil, types.UnsupportedError.NewWith(fmt.Sprintf("unsupported archive format: %s", path))
	}

	zr, err := czip.OpenReader(path)
	if err != nil {
		return nil, types.InvalidInputError.NewWith(fmt.Sprintf("cannot open archive %s: %v", path, err))
	}

	r := &Reader{
		path:   path,
		kind:   kind,
		zr:     zr,
		byName: make(map[string]*czip.File, len(zr.File)),
		names:  make([]string, 0, len(zr.File)),
	}

	for _, zf := range zr.File {
		r.byName[zf.Name] = zf
		r.names = append(r.names, zf.Name)
	}

	glog.V(2).Infof("opened archive %s with %d entries", path, len(r.names))
	return r, nil
}

// Kind reports the container format of the archive.
func (r *Reader) Kind() Kind {
	return r.kind
}

// EntryNames returns the archive's entry names in enumeration order,
// directory markers included.
func (r *Reader) EntryNames() []string {
	return r.names
}

// ReadEntry returns the full, decompressed contents of the named entry.
func (r *Reader) ReadEntry(name string) ([]byte, error) {
	zf, ok := r.byName[name]
	if !ok {
		return nil, types.NotFoundError.NewWith(fmt.Sprintf("no such entry: %s", name), types.WithEntry(name))
	}

	rc, err := zf.Open()
	if err != nil {
		return nil, types.CorruptError.NewWith(fmt.Sprintf("cannot open entry %s: %v", name, err), types.WithEntry(name))
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, types.IOError.NewWith(fmt.Sprintf("cannot read entry %s: %v", name, err), types.WithEntry(name))
	}
	return data, nil
}

// Close releases the archive's underlying file handle.
func (r *Reader) Close() error {
	return r.zr.Close()
}
