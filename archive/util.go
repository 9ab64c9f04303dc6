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

package archive

import (
	"bufio"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"

	"github.com/null8bit/log-archive-processor/types"
)

// fingerprintReadLimit caps how much of an archive is hashed when
// computing its fingerprint: only the first 100 MiB are consumed, read in
// 1 KiB chunks.
const fingerprintReadLimit = 100 * 1024 * 1024

const fingerprintBufSize = 1024

// Extension is a recognized archive container suffix.
type Extension int

const (
	ExtensionUnsupported Extension = iota
	ExtensionZip
)

// Exists reports whether path names an existing file.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, types.IOError.NewWith(fmt.Sprintf("cannot stat %s: %v", path, err))
}

// ClassifyExtension maps a path's extension onto a supported Extension.
func ClassifyExtension(path string) Extension {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return ExtensionZip
	default:
		return ExtensionUnsupported
	}
}

// Fingerprint returns the hex MD5 digest of the first fingerprintReadLimit
// bytes of the file at path, used to recognize an already-processed
// archive without rereading it in full.
func Fingerprint(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", types.IOError.NewWith(fmt.Sprintf("cannot open %s: %v", path, err))
	}
	defer f.Close()

	h := md5.New()
	br := bufio.NewReader(f)
	buf := make([]byte, fingerprintBufSize)

	var read int
	for read < fingerprintReadLimit {
		n, err := br.Read(buf)
		if n > 0 {
			remaining := fingerprintReadLimit - read
			if n > remaining {
				n = remaining
			}
			h.Write(buf[:n])
			read += n
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", types.IOError.NewWith(fmt.Sprintf("cannot read %s: %v", path, err))
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Registry is an append-only log of archive fingerprints that have already
// been processed, backed by a plain text file (one hex digest per line)
// and fronted by a bloom filter for fast negative lookups.
type Registry struct {
	path  string
	bloom *registryBloom
}

// OpenRegistry opens (creating if absent) the registry file at path and
// loads its companion bloom filter.
func OpenRegistry(path string) (*Registry, error) {
	b, err := loadRegistryBloom(path, defaultBloomFalsePositiveRate)
	if err != nil {
		return nil, err
	}
	return &Registry{path: path, bloom: b}, nil
}

// IsRegistered reports whether fingerprint has already been recorded. A
// bloom-filter miss short-circuits to false without touching disk; a hit
// falls through to a line scan of the registry file, since a bloom filter
// can false-positive but never false-negative.
func (r *Registry) IsRegistered(fingerprint string) (bool, error) {
	if !r.bloom.mightContain(fingerprint) {
		return false, nil
	}

	exists, err := Exists(r.path)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	f, err := os.Open(r.path)
	if err != nil {
		return false, types.IOError.NewWith(fmt.Sprintf("cannot open registry %s: %v", r.path, err))
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == fingerprint {
			return true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, types.IOError.NewWith(fmt.Sprintf("cannot scan registry %s: %v", r.path, err))
	}

	return false, nil
}

// Register appends fingerprint to the registry file and the bloom filter,
// persisting the filter so future process runs see the update.
func (r *Registry) Register(fingerprint string) error {
	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return types.IOError.NewWith(fmt.Sprintf("cannot open registry %s: %v", r.path, err))
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, fingerprint); err != nil {
		return types.IOError.NewWith(fmt.Sprintf("cannot append to registry %s: %v", r.path, err))
	}

	r.bloom.add(fingerprint)
	if err := r.bloom.persist(); err != nil {
		glog.Warningf("could not persist registry bloom filter for %s: %v", r.path, err)
	}
	return nil
}
