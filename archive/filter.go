package archive

import (
	"regexp"
	"strings"

	"github.com/null8bit/log-archive-processor/types"
)

// EntryFilter decides which archive entries are worth parsing and groups
// the accepted ones by top-level log folder.
type EntryFilter struct {
	namePatterns []*regexp.Regexp
	extensions   []string
}

// NewEntryFilter builds a filter from optional name-match regexes and
// extension suffixes. A nil/empty slice for either means "no constraint
// of that kind".
func NewEntryFilter(opts types.FilterOptions) *EntryFilter {
	return &EntryFilter{
		namePatterns: opts.NamePatterns,
		extensions:   opts.Extensions,
	}
}

// Accept reports whether entry should be parsed. Directory markers (names
// ending in "/") are always rejected. With both constraints set, the entry
// must match every regex AND at least one extension; with only one kind of
// constraint set, only that kind applies; with neither set, every
// non-directory entry is accepted.
func (f *EntryFilter) Accept(entry string) bool {
	if strings.HasSuffix(entry, "/") {
		return false
	}

	switch {
	case len(f.namePatterns) == 0 && len(f.extensions) == 0:
		return true
	case len(f.namePatterns) == 0:
		return matchesAnyExtension(entry, f.extensions)
	case len(f.extensions) == 0:
		return matchesAllPatterns(entry, f.namePatterns)
	default:
		return matchesAllPatterns(entry, f.namePatterns) && matchesAnyExtension(entry, f.extensions)
	}
}

func matchesAllPatterns(entry string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if !re.MatchString(entry) {
			return false
		}
	}
	return true
}

func matchesAnyExtension(entry string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(entry, ext) {
			return true
		}
	}
	return false
}

// EntryKind classifies an archive entry by the role it plays within its
// log folder.
type EntryKind int

const (
	EntryUnclassified EntryKind = iota
	EntryInfo
	EntryPassword
	EntryCookies
)

var (
	infoEntryPattern     = regexp.MustCompile(`(?i)(system|info)`)
	passwordEntryPattern = regexp.MustCompile(`(?i)(pass)`)
	cookiesEntryPattern  = regexp.MustCompile(`(?i)(cookies)`)
)

// ClassifyEntry reports which role an archive entry plays, checking info,
// then password, then cookies, and returning the first that matches. An
// entry name matching more than one pattern (e.g. "system-pass.txt")
// always classifies as the earlier kind in that order.
func ClassifyEntry(name string) EntryKind {
	switch {
	case infoEntryPattern.MatchString(name):
		return EntryInfo
	case passwordEntryPattern.MatchString(name):
		return EntryPassword
	case cookiesEntryPattern.MatchString(name):
		return EntryCookies
	default:
		return EntryUnclassified
	}
}

// LogFolder returns the top-level path segment of an archive entry, which
// is the log folder that entry belongs to.
func LogFolder(entry string) string {
	if i := strings.Index(entry, "/"); i >= 0 {
		return entry[:i]
	}
	return entry
}

// Group partitions entries into per-log-folder groups, accepting only the
// entries that pass f, and preserves archive enumeration order both across
// groups and within each group's entry list.
func Group(f *EntryFilter, entries []string) []types.LogGroup {
	index := make(map[string]int)
	var groups []types.LogGroup

	for _, entry := range entries {
		if !f.Accept(entry) {
			continue
		}

		folder := LogFolder(entry)
		i, ok := index[folder]
		if !ok {
			i = len(groups)
			index[folder] = i
			groups = append(groups, types.LogGroup{Name: folder})
		}
		groups[i].Entries = append(groups[i].Entries, entry)
	}

	return groups
}
