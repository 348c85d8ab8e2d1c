package organize

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Disposition is the resolution applied to a whole duplicate group.
type Disposition int

const (
	// MoveAll keeps every member of the group in the working set.
	MoveAll Disposition = iota
	// Skip removes every member of the group from the working set.
	Skip
)

// DuplicateGroup is a set of records sharing one content hash.
type DuplicateGroup struct {
	Hash    string
	Records []FileRecord
}

// GroupResolver decides a disposition for each duplicate group. The returned
// slice is index-aligned with the input groups. Implementations may block on
// interactive input; tests inject scripted resolvers instead.
type GroupResolver interface {
	ResolveGroups(groups []DuplicateGroup) ([]Disposition, error)
}

// GroupDuplicates collects groups of records with identical hashes, ordered
// by the first appearance of each hash in the input.
func GroupDuplicates(records []FileRecord) []DuplicateGroup {
	byHash := make(map[string][]FileRecord)
	var order []string
	for _, rec := range records {
		if _, seen := byHash[rec.Hash]; !seen {
			order = append(order, rec.Hash)
		}
		byHash[rec.Hash] = append(byHash[rec.Hash], rec)
	}

	var groups []DuplicateGroup
	for _, hash := range order {
		if recs := byHash[hash]; len(recs) > 1 {
			groups = append(groups, DuplicateGroup{Hash: hash, Records: recs})
		}
	}
	return groups
}

// ApplyDispositions filters the working set: every member of a skipped group
// is removed, everything else is kept. Input order is preserved.
func ApplyDispositions(records []FileRecord, groups []DuplicateGroup, dispositions []Disposition) []FileRecord {
	skipped := make(map[string]bool)
	for i, group := range groups {
		if dispositions[i] == Skip {
			for _, rec := range group.Records {
				skipped[rec.Path] = true
			}
		}
	}

	kept := make([]FileRecord, 0, len(records))
	for _, rec := range records {
		if !skipped[rec.Path] {
			kept = append(kept, rec)
		}
	}
	return kept
}

// Resolve runs duplicate detection over the working set. With ignore set it
// returns the input unchanged without grouping or prompting. Otherwise each
// duplicate group is handed to the resolver and its disposition applied to
// the whole group.
func Resolve(records []FileRecord, ignore bool, resolver GroupResolver) ([]FileRecord, error) {
	if ignore {
		return records, nil
	}

	groups := GroupDuplicates(records)
	if len(groups) == 0 {
		return records, nil
	}

	dispositions, err := resolver.ResolveGroups(groups)
	if err != nil {
		return nil, err
	}
	if len(dispositions) != len(groups) {
		return nil, fmt.Errorf("resolver returned %d dispositions for %d groups", len(dispositions), len(groups))
	}

	return ApplyDispositions(records, groups, dispositions), nil
}

// ConsoleResolver prompts on a line-based console. Invalid answers re-issue
// the prompt; there is no retry limit.
type ConsoleResolver struct {
	In  io.Reader
	Out io.Writer
}

// ResolveGroups lists each group's members and asks for a disposition.
func (r *ConsoleResolver) ResolveGroups(groups []DuplicateGroup) ([]Disposition, error) {
	reader := bufio.NewReader(r.In)
	dispositions := make([]Disposition, len(groups))

	for i, group := range groups {
		fmt.Fprintf(r.Out, "\nDuplicate group %d of %d (%d files):\n", i+1, len(groups), len(group.Records))
		for _, rec := range group.Records {
			fmt.Fprintf(r.Out, "  %s\n", rec.Path)
		}

		for {
			fmt.Fprint(r.Out, "[s]kip group or [m]ove all? ")
			line, err := reader.ReadString('\n')
			if err != nil && line == "" {
				return nil, fmt.Errorf("reading duplicate prompt answer: %w", err)
			}

			disposition, ok := ParseDisposition(line)
			if !ok {
				fmt.Fprintln(r.Out, "Please answer 's' (skip) or 'm' (move all).")
				continue
			}
			dispositions[i] = disposition
			break
		}
	}

	return dispositions, nil
}

// ParseDisposition interprets a prompt answer. Matching is case-insensitive;
// anything unrecognized is rejected so the prompt can repeat.
func ParseDisposition(answer string) (Disposition, bool) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "s", "skip":
		return Skip, true
	case "m", "move", "moveall":
		return MoveAll, true
	default:
		return 0, false
	}
}
