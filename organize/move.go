package organize

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// MoveFailure records a file whose relocation failed for a reason other than
// a name conflict (directory creation, rename).
type MoveFailure struct {
	Path string
	Err  error
}

// MoveReport summarizes the move stage. Conflicts and failures are per-file
// and never abort the remaining moves.
type MoveReport struct {
	Moved     int
	Conflicts []ConflictError
	Failures  []MoveFailure
}

// Move relocates each record into a category subfolder of its own directory,
// creating the subfolder when absent. A same-named file already present at
// the destination skips that single move and the run continues. Per-file
// success lines are written to out.
func Move(records []FileRecord, out io.Writer) MoveReport {
	var report MoveReport

	for _, rec := range records {
		destDir := filepath.Join(filepath.Dir(rec.Path), rec.Category)
		// The parent is the scanned directory, so a single Mkdir is
		// enough; an existing category folder is fine.
		if err := os.Mkdir(destDir, 0o755); err != nil && !os.IsExist(err) {
			report.Failures = append(report.Failures, MoveFailure{Path: rec.Path, Err: err})
			continue
		}

		destPath := filepath.Join(destDir, rec.Name)
		if _, err := os.Stat(destPath); err == nil {
			report.Conflicts = append(report.Conflicts, ConflictError{Source: rec.Path, Destination: destPath})
			continue
		} else if !os.IsNotExist(err) {
			report.Failures = append(report.Failures, MoveFailure{Path: rec.Path, Err: err})
			continue
		}

		if err := os.Rename(rec.Path, destPath); err != nil {
			report.Failures = append(report.Failures, MoveFailure{Path: rec.Path, Err: err})
			continue
		}

		report.Moved++
		fmt.Fprintf(out, "Moved %s -> %s%c%s\n", rec.Name, rec.Category, filepath.Separator, rec.Name)
	}

	return report
}
