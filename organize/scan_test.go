package organize

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", name, err)
	}
	return path
}

func allTargets(t *testing.T) map[string]bool {
	t.Helper()
	selection, err := NewSelection(DefaultRegistry(), nil, nil)
	if err != nil {
		t.Fatalf("NewSelection() error = %v", err)
	}
	return selection.TargetExtensions(DefaultRegistry())
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "photo.jpg", "image bytes")
	writeFile(t, dir, "REPORT.PDF", "pdf bytes")
	writeFile(t, dir, "notes.xyz", "unknown extension")

	// Files inside subdirectories must be ignored (no recursion).
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("Failed to create subdirectory: %v", err)
	}
	writeFile(t, sub, "hidden.jpg", "nested image")

	result, err := Scan(dir, allTargets(t), DefaultRegistry(), io.Discard)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(result.Failures) != 0 {
		t.Fatalf("Expected no failures, got %v", result.Failures)
	}
	if len(result.Records) != 2 {
		t.Fatalf("Expected 2 records, got %d: %v", len(result.Records), result.Records)
	}

	byName := make(map[string]FileRecord)
	for _, rec := range result.Records {
		byName[rec.Name] = rec
	}

	photo, ok := byName["photo.jpg"]
	if !ok {
		t.Fatal("Expected photo.jpg to be scanned")
	}
	if photo.Category != "Images" {
		t.Errorf("Expected photo.jpg category Images, got %s", photo.Category)
	}
	if photo.Ext != ".jpg" {
		t.Errorf("Expected normalized extension .jpg, got %s", photo.Ext)
	}
	if !filepath.IsAbs(photo.Path) {
		t.Errorf("Expected absolute path, got %s", photo.Path)
	}

	sum := sha256.Sum256([]byte("image bytes"))
	if photo.Hash != hex.EncodeToString(sum[:]) {
		t.Errorf("Unexpected hash for photo.jpg: %s", photo.Hash)
	}

	// Case-insensitive extension matching
	report, ok := byName["REPORT.PDF"]
	if !ok {
		t.Fatal("Expected REPORT.PDF to be scanned despite upper-case extension")
	}
	if report.Category != "Documents" {
		t.Errorf("Expected REPORT.PDF category Documents, got %s", report.Category)
	}
}

func TestScanTargetFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "photo.jpg", "image")
	writeFile(t, dir, "report.pdf", "document")

	selection, err := NewSelection(DefaultRegistry(), []string{"Images"}, nil)
	if err != nil {
		t.Fatalf("NewSelection() error = %v", err)
	}

	result, err := Scan(dir, selection.TargetExtensions(DefaultRegistry()), DefaultRegistry(), io.Discard)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if len(result.Records) != 1 || result.Records[0].Name != "photo.jpg" {
		t.Errorf("Expected only photo.jpg, got %v", result.Records)
	}
}

func TestScanEmptyDirectory(t *testing.T) {
	result, err := Scan(t.TempDir(), allTargets(t), DefaultRegistry(), io.Discard)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(result.Records) != 0 || len(result.Failures) != 0 {
		t.Errorf("Expected empty result, got %v", result)
	}
}

func TestScanBadTarget(t *testing.T) {
	file := writeFile(t, t.TempDir(), "plain.txt", "not a directory")

	tests := []struct {
		name string
		path string
	}{
		{"Missing directory", filepath.Join(t.TempDir(), "does-not-exist")},
		{"Regular file", file},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Scan(tt.path, allTargets(t), DefaultRegistry(), io.Discard)
			if err == nil {
				t.Fatalf("Scan(%q) expected error", tt.path)
			}
			var dirErr *NotDirectoryError
			if !errors.As(err, &dirErr) {
				t.Errorf("Scan(%q) error = %v, expected NotDirectoryError", tt.path, err)
			}
		})
	}
}

func TestScanUnreadableFileIsIsolated(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("running as root, permission bits are not enforced")
	}

	dir := t.TempDir()
	writeFile(t, dir, "good.jpg", "readable")
	locked := writeFile(t, dir, "locked.jpg", "unreadable")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatalf("Failed to chmod test file: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o644) })

	result, err := Scan(dir, allTargets(t), DefaultRegistry(), io.Discard)
	if err != nil {
		t.Fatalf("Scan() error = %v, per-file failures must not be fatal", err)
	}

	if len(result.Records) != 1 || result.Records[0].Name != "good.jpg" {
		t.Errorf("Expected only good.jpg to survive, got %v", result.Records)
	}
	if len(result.Failures) != 1 || filepath.Base(result.Failures[0].Path) != "locked.jpg" {
		t.Errorf("Expected one failure for locked.jpg, got %v", result.Failures)
	}
}

func TestScanRoundTripAfterMove(t *testing.T) {
	// A file moved into its category subfolder and then scanned there again
	// keeps its hash but forms no duplicate group on its own.
	dir := t.TempDir()
	writeFile(t, dir, "photo.jpg", "stable content")

	first, err := Scan(dir, allTargets(t), DefaultRegistry(), io.Discard)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	Move(first.Records, io.Discard)

	subdir := filepath.Join(dir, "Images")
	second, err := Scan(subdir, allTargets(t), DefaultRegistry(), io.Discard)
	if err != nil {
		t.Fatalf("Scan() of category folder error = %v", err)
	}

	if len(second.Records) != 1 {
		t.Fatalf("Expected 1 record in category folder, got %d", len(second.Records))
	}
	if second.Records[0].Hash != first.Records[0].Hash {
		t.Error("Expected hash to be unchanged by the move")
	}
	if groups := GroupDuplicates(second.Records); len(groups) != 0 {
		t.Errorf("Single file must not form a duplicate group, got %v", groups)
	}
}

func TestHashFileDeterministic(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.bin", "same content")
	b := writeFile(t, dir, "b.bin", "same content")
	c := writeFile(t, dir, "c.bin", "different content")

	hashA, err := HashFile(a)
	if err != nil {
		t.Fatalf("HashFile() error = %v", err)
	}
	hashB, _ := HashFile(b)
	hashC, _ := HashFile(c)

	if hashA != hashB {
		t.Error("Identical content must produce identical hashes")
	}
	if hashA == hashC {
		t.Error("Different content must produce different hashes")
	}
	if len(hashA) != 64 {
		t.Errorf("Expected 64 hex chars for SHA-256, got %d", len(hashA))
	}
}
