package orchestrator

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/null8bit/log-archive-processor/archive"
	"github.com/null8bit/log-archive-processor/sink"
	"github.com/null8bit/log-archive-processor/types"
)

func writeTestArchive(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "logs.zip")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip writer: %v", err)
	}

	return path
}

func TestRunEndToEndGroup(t *testing.T) {
	path := writeTestArchive(t, map[string]string{
		"victim1/system.txt": "HWID: ABC123\nCountry: BR\n",
		"victim1/password.txt": "url:example.com\n" +
			"username:alice\n" +
			"password:hunter2\n" +
			"url:another.com\n",
		"victim1/cookies.txt": ".example.com\tTRUE\t/\tFALSE\t0\tsession\tabc123\n",
	})

	filter := archive.NewEntryFilter(types.FilterOptions{Extensions: []string{".txt"}})
	memSink := sink.NewMemorySink()

	orc := New(memSink, filter, nil)
	if err := orc.Run(context.Background(), path); err != nil {
		t.Fatalf("run: %v", err)
	}

	creds := memSink.Credentials()
	if len(creds) != 1 {
		t.Fatalf("expected 1 credential, got %d", len(creds))
	}
	if creds[0].URL != "example.com" || creds[0].Username != "alice" || creds[0].Password != "hunter2" {
		t.Fatalf("unexpected credential: %+v", creds[0])
	}
	if creds[0].Info == nil || creds[0].Info.Country != "BR" || creds[0].Info.Hwid != "ABC123" {
		t.Fatalf("unexpected info on credential: %+v", creds[0].Info)
	}

	bundles := memSink.CookieBundles()
	if len(bundles) != 1 {
		t.Fatalf("expected 1 cookie bundle, got %d", len(bundles))
	}
	if bundles[0].Domain != "example.com" || len(bundles[0].Cookies) != 1 {
		t.Fatalf("unexpected cookie bundle: %+v", bundles[0])
	}
}

func TestRunTieBreaksInfoOverPassword(t *testing.T) {
	path := writeTestArchive(t, map[string]string{
		"victim1/system-pass.txt": "HWID: XYZ\nCountry: US\n",
		"victim1/password.txt": "url:site.com\n" +
			"username:bob\n" +
			"password:pw123\n" +
			"url:next.com\n",
	})

	filter := archive.NewEntryFilter(types.FilterOptions{Extensions: []string{".txt"}})
	memSink := sink.NewMemorySink()

	orc := New(memSink, filter, nil)
	if err := orc.Run(context.Background(), path); err != nil {
		t.Fatalf("run: %v", err)
	}

	creds := memSink.Credentials()
	if len(creds) != 1 {
		t.Fatalf("expected 1 credential, got %d", len(creds))
	}
	if creds[0].Info == nil || creds[0].Info.Country != "US" {
		t.Fatalf("expected system-pass.txt to classify as info, got: %+v", creds[0].Info)
	}
}

func TestRunMissingPasswordEntrySkipsGroup(t *testing.T) {
	path := writeTestArchive(t, map[string]string{
		"victim1/system.txt": "HWID: ABC\nCountry: BR\n",
	})

	filter := archive.NewEntryFilter(types.FilterOptions{Extensions: []string{".txt"}})
	memSink := sink.NewMemorySink()

	orc := New(memSink, filter, nil)
	if err := orc.Run(context.Background(), path); err == nil {
		t.Fatalf("expected an error for the group missing a password entry")
	}

	if len(memSink.Credentials()) != 0 {
		t.Fatalf("expected no credentials inserted")
	}
}
