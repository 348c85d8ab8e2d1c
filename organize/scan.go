package organize

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
)

// FileRecord describes one scanned file. Records are created once during the
// scan and never mutated afterwards.
type FileRecord struct {
	Path     string // absolute path
	Name     string // base name
	Ext      string // normalized extension
	Category string
	Hash     string // hex-encoded SHA-256 of the file content
}

// ScanFailure records a file that could not be hashed. The file is excluded
// from the run; the failure itself is not fatal.
type ScanFailure struct {
	Path string
	Err  error
}

// ScanResult holds the records produced by a scan plus any per-file failures.
type ScanResult struct {
	Records  []FileRecord
	Failures []ScanFailure
}

// Scan lists the direct entries of dir, keeps regular files whose extension
// is in targets, and produces a FileRecord per file. Progress is written to
// out while hashing. A missing or non-directory target path is fatal; a file
// that cannot be read mid-scan only fails that single record.
func Scan(dir string, targets map[string]bool, reg Registry, out io.Writer) (ScanResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return ScanResult{}, &NotDirectoryError{Path: dir, Reason: "no such directory"}
		}
		return ScanResult{}, fmt.Errorf("cannot access %s: %w", dir, err)
	}
	if !info.IsDir() {
		return ScanResult{}, &NotDirectoryError{Path: dir, Reason: "not a directory"}
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return ScanResult{}, fmt.Errorf("cannot resolve %s: %w", dir, err)
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		return ScanResult{}, fmt.Errorf("cannot list %s: %w", absDir, err)
	}

	// Collect candidates first so the progress bar knows its total.
	var candidates []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if !targets[ExtOf(entry.Name())] {
			continue
		}
		candidates = append(candidates, entry.Name())
	}

	var result ScanResult
	if len(candidates) == 0 {
		return result, nil
	}

	bar := progressbar.NewOptions(len(candidates),
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription("hashing"),
		progressbar.OptionClearOnFinish(),
	)

	for _, name := range candidates {
		path := filepath.Join(absDir, name)
		_ = bar.Add(1)

		hash, err := HashFile(path)
		if err != nil {
			result.Failures = append(result.Failures, ScanFailure{Path: path, Err: err})
			continue
		}

		ext := ExtOf(name)
		category, ok := reg.Classify(ext)
		if !ok {
			// Targets are derived from the registry, so this cannot
			// happen with a well-formed selection.
			continue
		}

		result.Records = append(result.Records, FileRecord{
			Path:     path,
			Name:     name,
			Ext:      ext,
			Category: category,
			Hash:     hash,
		})
	}
	_ = bar.Finish()

	return result, nil
}

// HashFile returns the hex-encoded SHA-256 digest of a file's content.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
