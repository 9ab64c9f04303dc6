package parser

import "testing"

func TestParseInfoBasic(t *testing.T) {
	content := []byte("HWID: ABC123\nCountry: BR\n")
	info := ParseInfo(content)

	if info.Hwid != "ABC123" {
		t.Fatalf("expected hwid ABC123, got %q", info.Hwid)
	}
	if info.Country != "BR" {
		t.Fatalf("expected country BR, got %q", info.Country)
	}
}

func TestParseInfoCaseInsensitiveKeys(t *testing.T) {
	content := []byte("hwid: lower-case-key\nCOUNTRY: US\n")
	info := ParseInfo(content)

	if info.Hwid != "lower-case-key" || info.Country != "US" {
		t.Fatalf("expected case-insensitive key match, got %+v", info)
	}
}

func TestParseInfoLastValueWins(t *testing.T) {
	content := []byte("Country: BR\nCountry: US\n")
	info := ParseInfo(content)

	if info.Country != "US" {
		t.Fatalf("expected last value to win, got %q", info.Country)
	}
}

func TestParseInfoSkipsLinesWithoutColon(t *testing.T) {
	content := []byte("not a kv line\nCountry: BR\n")
	info := ParseInfo(content)

	if info.Country != "BR" {
		t.Fatalf("expected country BR, got %q", info.Country)
	}
}

func TestParseInfoIgnoresUnknownKeys(t *testing.T) {
	content := []byte("Browser: Chrome\nCountry: BR\n")
	info := ParseInfo(content)

	if info.Country != "BR" || info.Hwid != "" {
		t.Fatalf("expected only country to be set, got %+v", info)
	}
}
