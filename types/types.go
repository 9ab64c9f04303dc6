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

// Package types holds the data model shared by the archive, parser, and
// sink packages: the metadata and record shapes extracted from one
// stealer-log archive.
package types

import "regexp"

// LogInfo is the host metadata for one log folder. It is built once per
// folder by the info parser and then shared, read-only, by every
// Credential and CookieBundle parsed out of that same folder.
type LogInfo struct {
	Country string
	Hwid    string
}

// Empty reports whether neither field was ever populated.
func (li *LogInfo) Empty() bool {
	return li.Country == "" && li.Hwid == ""
}

// Credential is one stored-password record. Info points at the LogInfo of
// the log folder the record came from.
type Credential struct {
	URL      string
	Username string
	Password string
	Info     *LogInfo
}

// Valid reports whether all three of URL, Username and Password were
// observed non-empty, the invariant a Credential must satisfy before it is
// ever constructed by the password parser.
func (c *Credential) Valid() bool {
	return c.URL != "" && c.Username != "" && c.Password != ""
}

// Cookie is one browser cookie row from a Netscape-format cookies export.
type Cookie struct {
	Domain     string
	HTTPOnly   string
	Path       string
	Secure     string
	ExpiresIn  string
	Name       string
	Value      string
}

// CookieBundle groups the cookies of one domain within one log folder.
type CookieBundle struct {
	Info    *LogInfo
	Domain  string
	Cookies []Cookie
}

// LogGroup is a top-level folder segment inside the archive, paired with
// the entry names (in archive enumeration order) that belong to it.
type LogGroup struct {
	Name    string
	Entries []string
}

// FilterOptions configures which archive entries EntryFilter accepts.
// Either field may be nil/empty to disable that constraint.
type FilterOptions struct {
	NamePatterns []*regexp.Regexp
	Extensions   []string
}
