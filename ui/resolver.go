package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/filesorter/organize"
)

// TUIResolver resolves duplicate groups through a fullscreen bubbletea
// prompt. It satisfies organize.GroupResolver.
type TUIResolver struct{}

// ResolveGroups runs the resolver program and returns one disposition per
// group. Quitting before every group is answered aborts the run.
func (TUIResolver) ResolveGroups(groups []organize.DuplicateGroup) ([]organize.Disposition, error) {
	model := NewResolverModel(groups)
	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return nil, err
	}

	m, ok := final.(ResolverModel)
	if !ok || !m.done {
		return nil, fmt.Errorf("duplicate resolution aborted")
	}
	return m.dispositions, nil
}

// ResolverModel walks duplicate groups one at a time and records a
// disposition for each. Only 's' and 'm' advance; any other key is ignored,
// which keeps the current group on screen until a valid answer arrives.
type ResolverModel struct {
	groups       []organize.DuplicateGroup
	current      int
	dispositions []organize.Disposition

	resolved progress.Model
	width    int

	done     bool
	quitting bool
}

// NewResolverModel creates a resolver model over the given groups.
func NewResolverModel(groups []organize.DuplicateGroup) ResolverModel {
	return ResolverModel{
		groups:       groups,
		dispositions: make([]organize.Disposition, 0, len(groups)),
		resolved:     progress.New(progress.WithDefaultGradient()),
	}
}

// Init implements tea.Model
func (m ResolverModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m ResolverModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch strings.ToLower(msg.String()) {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit

		case "s":
			return m.record(organize.Skip)

		case "m":
			return m.record(organize.MoveAll)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
	}

	return m, nil
}

func (m ResolverModel) record(d organize.Disposition) (tea.Model, tea.Cmd) {
	m.dispositions = append(m.dispositions, d)
	m.current++
	if m.current >= len(m.groups) {
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model
func (m ResolverModel) View() string {
	if m.done || m.quitting {
		return ""
	}

	var content strings.Builder

	header := fmt.Sprintf("Duplicate Resolver (group %d of %d)", m.current+1, len(m.groups))
	content.WriteString(HeaderStyle.Render(header))
	content.WriteString("\n\n")

	content.WriteString(m.resolved.ViewAs(float64(m.current) / float64(len(m.groups))))
	content.WriteString("\n\n")

	group := m.groups[m.current]
	content.WriteString(InfoStyle.Render(fmt.Sprintf("Hash %.12s… (%d identical files)", group.Hash, len(group.Records))))
	content.WriteString("\n")
	for _, rec := range group.Records {
		content.WriteString(fmt.Sprintf("  %s\n", rec.Path))
	}

	content.WriteString("\n")
	content.WriteString("[s] skip group (leave files in place)  [m] move all copies  [q] abort")
	content.WriteString("\n")

	return content.String()
}
