package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/dirsnap/internal/tui/components"
)

// PickerKeys converts the key map into the picker's bindings.
func (k KeyMap) PickerKeys() components.PickerKeys {
	return components.PickerKeys{
		Up:     k.Up,
		Down:   k.Down,
		Toggle: k.Toggle,
		All:    k.All,
		Submit: k.Submit,
		Quit:   k.Quit,
	}
}

// RunPicker shows a multi-select list and returns the chosen entry indices.
// A cancelled picker returns ok=false.
func RunPicker(title string, options []components.Option, in io.Reader, out io.Writer) ([]int, bool, error) {
	keys := DefaultKeyMap()
	model := components.NewPicker(title, options, keys.PickerKeys(), keys.HelpText())

	program := tea.NewProgram(model, tea.WithInput(in), tea.WithOutput(out))
	final, err := program.Run()
	if err != nil {
		return nil, false, fmt.Errorf("picker failed: %w", err)
	}

	picker, ok := final.(components.Picker)
	if !ok || picker.Cancelled() {
		return nil, false, nil
	}
	return picker.Chosen(), true, nil
}
