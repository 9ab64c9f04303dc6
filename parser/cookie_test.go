package parser

import (
	"testing"

	"github.com/null8bit/log-archive-processor/types"
)

func TestParseCookiesBasic(t *testing.T) {
	content := []byte(".example.com\tTRUE\t/\tFALSE\t1999999999\tsession\tabc123\n")

	bundles, err := ParseCookies(content, &types.LogInfo{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bundle, ok := bundles["example.com"]
	if !ok {
		t.Fatalf("expected a bundle for example.com, got %+v", bundles)
	}
	if len(bundle.Cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(bundle.Cookies))
	}
	if bundle.Cookies[0].Name != "session" || bundle.Cookies[0].Value != "abc123" {
		t.Fatalf("unexpected cookie: %+v", bundle.Cookies[0])
	}
	if bundle.Cookies[0].Domain != "example.com" {
		t.Fatalf("expected leading dot stripped from domain, got %q", bundle.Cookies[0].Domain)
	}
}

func TestParseCookiesGroupsByDomain(t *testing.T) {
	content := []byte(
		".example.com\tTRUE\t/\tFALSE\t0\ta\t1\n" +
			".example.com\tTRUE\t/\tFALSE\t0\tb\t2\n" +
			".other.com\tTRUE\t/\tFALSE\t0\tc\t3\n",
	)

	bundles, err := ParseCookies(content, &types.LogInfo{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bundles["example.com"].Cookies) != 2 {
		t.Fatalf("expected 2 cookies for example.com, got %d", len(bundles["example.com"].Cookies))
	}
	if len(bundles["other.com"].Cookies) != 1 {
		t.Fatalf("expected 1 cookie for other.com, got %d", len(bundles["other.com"].Cookies))
	}
}

func TestParseCookiesSkipsMalformedLines(t *testing.T) {
	content := []byte(
		"not enough fields\n" +
			".example.com\tTRUE\t/\tFALSE\t0\ta\t1\n",
	)

	bundles, err := ParseCookies(content, &types.LogInfo{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bundles) != 1 {
		t.Fatalf("expected 1 bundle, got %d", len(bundles))
	}
}

func TestParseCookiesEmptyReturnsError(t *testing.T) {
	content := []byte("garbage line with no tabs at all\n")

	_, err := ParseCookies(content, &types.LogInfo{})
	if err == nil {
		t.Fatalf("expected an error for a file with no usable cookie lines")
	}
}
