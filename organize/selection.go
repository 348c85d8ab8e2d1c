package organize

import "strings"

// SelectionMode controls which categories a run targets.
type SelectionMode int

const (
	// SelectAll targets every category in the registry.
	SelectAll SelectionMode = iota
	// SelectOnly targets exactly the listed categories.
	SelectOnly
	// SelectExcept targets every category except the listed ones.
	SelectExcept
)

// Selection is a validated category selection. Build one with NewSelection.
type Selection struct {
	Mode       SelectionMode
	Categories []string
}

// NewSelection validates the --only/--except flag values against the
// registry. Supplying both lists is a configuration error, as is naming a
// category the registry does not know.
func NewSelection(reg Registry, only, except []string) (Selection, error) {
	if len(only) > 0 && len(except) > 0 {
		return Selection{}, &ConfigError{Reason: "--only and --except are mutually exclusive"}
	}

	validate := func(names []string) error {
		for _, name := range names {
			if _, err := reg.ExtensionsOf(name); err != nil {
				return err
			}
		}
		return nil
	}

	switch {
	case len(only) > 0:
		if err := validate(only); err != nil {
			return Selection{}, err
		}
		return Selection{Mode: SelectOnly, Categories: only}, nil
	case len(except) > 0:
		if err := validate(except); err != nil {
			return Selection{}, err
		}
		return Selection{Mode: SelectExcept, Categories: except}, nil
	default:
		return Selection{}, nil
	}
}

// TargetExtensions resolves the selection to the set of extensions the
// scanner should accept. Keys are normalized extensions.
func (s Selection) TargetExtensions(reg Registry) map[string]bool {
	targets := make(map[string]bool)

	listed := func(name string) bool {
		for _, c := range s.Categories {
			if strings.EqualFold(c, name) {
				return true
			}
		}
		return false
	}

	for _, cat := range reg {
		switch s.Mode {
		case SelectOnly:
			if !listed(cat.Name) {
				continue
			}
		case SelectExcept:
			if listed(cat.Name) {
				continue
			}
		}
		for _, ext := range cat.Extensions {
			targets[ext] = true
		}
	}

	return targets
}
