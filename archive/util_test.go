package archive

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "present.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	ok, err := Exists(path)
	if err != nil || !ok {
		t.Fatalf("expected existing file to report true, got ok=%v err=%v", ok, err)
	}

	ok, err = Exists(filepath.Join(dir, "absent.txt"))
	if err != nil || ok {
		t.Fatalf("expected missing file to report false, got ok=%v err=%v", ok, err)
	}
}

func TestClassifyExtension(t *testing.T) {
	if ClassifyExtension("archive.zip") != ExtensionZip {
		t.Fatalf("expected .zip to classify as ExtensionZip")
	}
	if ClassifyExtension("archive.ZIP") != ExtensionZip {
		t.Fatalf("expected extension match to be case-insensitive")
	}
	if ClassifyExtension("archive.7z") != ExtensionUnsupported {
		t.Fatalf("expected .7z to classify as unsupported")
	}
}

func TestFingerprintIsStableAndSensitive(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.zip")
	pathB := filepath.Join(dir, "b.zip")

	if err := os.WriteFile(pathA, []byte("same contents"), 0644); err != nil {
		t.Fatalf("write a: %v", err)
	}
	if err := os.WriteFile(pathB, []byte("different contents"), 0644); err != nil {
		t.Fatalf("write b: %v", err)
	}

	fpA1, err := Fingerprint(pathA)
	if err != nil {
		t.Fatalf("fingerprint a: %v", err)
	}
	fpA2, err := Fingerprint(pathA)
	if err != nil {
		t.Fatalf("fingerprint a again: %v", err)
	}
	if fpA1 != fpA2 {
		t.Fatalf("expected stable fingerprint, got %s and %s", fpA1, fpA2)
	}

	fpB, err := Fingerprint(pathB)
	if err != nil {
		t.Fatalf("fingerprint b: %v", err)
	}
	if fpA1 == fpB {
		t.Fatalf("expected different contents to produce different fingerprints")
	}
}

func TestRegistryRoundTrip(t *testing.T) {
	dir := t.TempDir()
	registryPath := filepath.Join(dir, "hashes.txt")

	reg, err := OpenRegistry(registryPath)
	if err != nil {
		t.Fatalf("open registry: %v", err)
	}

	const fp = "deadbeefcafebabe"

	registered, err := reg.IsRegistered(fp)
	if err != nil {
		t.Fatalf("is registered: %v", err)
	}
	if registered {
		t.Fatalf("expected fingerprint to not be registered yet")
	}

	if err := reg.Register(fp); err != nil {
		t.Fatalf("register: %v", err)
	}

	registered, err = reg.IsRegistered(fp)
	if err != nil {
		t.Fatalf("is registered after register: %v", err)
	}
	if !registered {
		t.Fatalf("expected fingerprint to be registered")
	}

	reopened, err := OpenRegistry(registryPath)
	if err != nil {
		t.Fatalf("reopen registry: %v", err)
	}
	registered, err = reopened.IsRegistered(fp)
	if err != nil {
		t.Fatalf("is registered on reopened registry: %v", err)
	}
	if !registered {
		t.Fatalf("expected fingerprint to survive reopening the registry")
	}
}
