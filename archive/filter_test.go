package archive

import (
	"regexp"
	"testing"

	"github.com/null8bit/log-archive-processor/types"
)

func TestEntryFilterRejectsDirectoryMarkers(t *testing.T) {
	f := NewEntryFilter(types.FilterOptions{})
	if f.Accept("victim1/") {
		t.Fatalf("expected directory marker to be rejected")
	}
}

func TestEntryFilterNoConstraintsAcceptsEverything(t *testing.T) {
	f := NewEntryFilter(types.FilterOptions{})
	if !f.Accept("victim1/anything.bin") {
		t.Fatalf("expected unconstrained filter to accept everything")
	}
}

func TestEntryFilterExtensionOnly(t *testing.T) {
	f := NewEntryFilter(types.FilterOptions{Extensions: []string{".txt"}})

	if !f.Accept("victim1/password.txt") {
		t.Fatalf("expected .txt entry to be accepted")
	}
	if f.Accept("victim1/password.bin") {
		t.Fatalf("expected non-.txt entry to be rejected")
	}
}

func TestEntryFilterNamePatternAndExtension(t *testing.T) {
	f := NewEntryFilter(types.FilterOptions{
		NamePatterns: []*regexp.Regexp{regexp.MustCompile(`(?i)pass`)},
		Extensions:   []string{".txt"},
	})

	if !f.Accept("victim1/password.txt") {
		t.Fatalf("expected entry matching both constraints to be accepted")
	}
	if f.Accept("victim1/cookies.txt") {
		t.Fatalf("expected entry failing the name pattern to be rejected")
	}
	if f.Accept("victim1/password.bin") {
		t.Fatalf("expected entry failing the extension constraint to be rejected")
	}
}

func TestGroupPreservesOrderAndFiltersRejected(t *testing.T) {
	f := NewEntryFilter(types.FilterOptions{Extensions: []string{".txt"}})
	entries := []string{
		"victim1/",
		"victim1/system.txt",
		"victim1/password.txt",
		"victim1/thumbs.db",
		"victim2/system.txt",
		"victim1/cookies.txt",
	}

	groups := Group(f, entries)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Name != "victim1" || groups[1].Name != "victim2" {
		t.Fatalf("expected groups in first-seen order, got %+v", groups)
	}
	if len(groups[0].Entries) != 3 {
		t.Fatalf("expected 3 accepted entries in victim1, got %d", len(groups[0].Entries))
	}
}

func TestClassifyEntryPriority(t *testing.T) {
	cases := map[string]EntryKind{
		"system.txt":      EntryInfo,
		"info.txt":        EntryInfo,
		"password.txt":    EntryPassword,
		"system-pass.txt": EntryInfo,
		"cookies.txt":     EntryCookies,
		"random.txt":      EntryUnclassified,
	}

	for name, want := range cases {
		if got := ClassifyEntry(name); got != want {
			t.Errorf("ClassifyEntry(%q) = %v, want %v", name, got, want)
		}
	}
}
