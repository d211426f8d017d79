package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Option represents one pickable entry.
type Option struct {
	Index int
	Label string
	// Disabled options are shown but cannot be toggled (directories).
	Disabled bool
}

// PickerKeys are the bindings the picker reacts to.
type PickerKeys struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	All    key.Binding
	Submit key.Binding
	Quit   key.Binding
}

type pickerStyles struct {
	Title      lipgloss.Style
	Cursor     lipgloss.Style
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Disabled   lipgloss.Style
	Help       lipgloss.Style
}

func defaultPickerStyles() pickerStyles {
	return pickerStyles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginBottom(1),
		Cursor:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Selected:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Unselected: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Disabled:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Help:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1),
	}
}

// Picker is a multi-select list of snapshot entries.
type Picker struct {
	title     string
	help      string
	options   []Option
	chosen    map[int]bool
	cursor    int
	keys      PickerKeys
	styles    pickerStyles
	submitted bool
	cancelled bool
}

// NewPicker creates a picker over options.
func NewPicker(title string, options []Option, keys PickerKeys, help string) Picker {
	return Picker{
		title:   title,
		help:    help,
		options: options,
		chosen:  make(map[int]bool),
		keys:    keys,
		styles:  defaultPickerStyles(),
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch {
	case key.Matches(keyMsg, p.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(keyMsg, p.keys.Down):
		if p.cursor < len(p.options)-1 {
			p.cursor++
		}
	case key.Matches(keyMsg, p.keys.Toggle):
		if p.cursor < len(p.options) && !p.options[p.cursor].Disabled {
			p.chosen = p.withToggled(p.cursor)
		}
	case key.Matches(keyMsg, p.keys.All):
		p.chosen = p.withAllToggled()
	case key.Matches(keyMsg, p.keys.Submit):
		p.submitted = true
		return p, tea.Quit
	case key.Matches(keyMsg, p.keys.Quit):
		p.cancelled = true
		return p, tea.Quit
	}
	return p, nil
}

// withToggled copies the selection so earlier model values stay unchanged.
func (p Picker) withToggled(i int) map[int]bool {
	next := make(map[int]bool, len(p.chosen)+1)
	for k, v := range p.chosen {
		next[k] = v
	}
	if next[i] {
		delete(next, i)
	} else {
		next[i] = true
	}
	return next
}

func (p Picker) withAllToggled() map[int]bool {
	selectable := 0
	for _, opt := range p.options {
		if !opt.Disabled {
			selectable++
		}
	}
	next := make(map[int]bool)
	if len(p.chosen) == selectable {
		return next
	}
	for i, opt := range p.options {
		if !opt.Disabled {
			next[i] = true
		}
	}
	return next
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(p.styles.Title.Render(p.title))
	b.WriteString("\n")

	for i, opt := range p.options {
		cursor := "  "
		if i == p.cursor {
			cursor = p.styles.Cursor.Render("> ")
		}

		mark := "[ ]"
		style := p.styles.Unselected
		switch {
		case opt.Disabled:
			mark = "   "
			style = p.styles.Disabled
		case p.chosen[i]:
			mark = "[x]"
			style = p.styles.Selected
		}

		b.WriteString(cursor)
		b.WriteString(style.Render(fmt.Sprintf("%s %d %s", mark, opt.Index, opt.Label)))
		b.WriteString("\n")
	}

	if p.help != "" {
		b.WriteString(p.styles.Help.Render(p.help))
	}
	return b.String()
}

// Chosen returns the entry indices that were selected, in list order.
// Empty when the picker was cancelled.
func (p Picker) Chosen() []int {
	if p.cancelled {
		return nil
	}
	var out []int
	for i, opt := range p.options {
		if p.chosen[i] {
			out = append(out, opt.Index)
		}
	}
	return out
}

// Cancelled returns true if the user quit without confirming.
func (p Picker) Cancelled() bool {
	return p.cancelled
}

// Submitted returns true if the user confirmed the selection.
func (p Picker) Submitted() bool {
	return p.submitted
}
