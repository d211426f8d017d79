package tui

import "github.com/charmbracelet/lipgloss"

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorSuccess   = lipgloss.Color("34")  // Green
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorError     = lipgloss.Color("196") // Red
	ColorMuted     = lipgloss.Color("240") // Dark gray
)

// Styles for command output.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// Tree and list rendering
	DirStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	FileStyle = lipgloss.NewStyle()

	IndexStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	BranchStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// Selection styles
	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	UnselectedStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	// Status styles
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// Help text style
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1)
)

// Symbols for visual feedback.
const (
	SymbolSelected   = "●"
	SymbolUnselected = "○"
	SymbolCheck      = "✓"
	SymbolCross      = "✗"
	SymbolArrowRight = "→"
	SymbolBranch     = "├── "
	SymbolLastBranch = "└── "
	SymbolPipe       = "│   "
	SymbolSpace      = "    "
)

// Palette bundles the styles a renderer uses so plain output can swap in
// unstyled ones.
type Palette struct {
	Dir     lipgloss.Style
	File    lipgloss.Style
	Index   lipgloss.Style
	Branch  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
}

// StyledPalette returns the colored palette.
func StyledPalette() Palette {
	return Palette{
		Dir:     DirStyle,
		File:    FileStyle,
		Index:   IndexStyle,
		Branch:  BranchStyle,
		Success: SuccessStyle,
		Error:   ErrorStyle,
	}
}

// PlainPalette returns a palette that renders text unchanged.
func PlainPalette() Palette {
	plain := lipgloss.NewStyle()
	return Palette{Dir: plain, File: plain, Index: plain, Branch: plain, Success: plain, Error: plain}
}
