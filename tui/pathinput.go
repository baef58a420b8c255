package tui

import (
	"github.com/gdamore/tcell/v2"
	homedir "github.com/mitchellh/go-homedir"
)

// PathInput is a text input for filesystem paths. Enter expands a leading
// "~" to the user's home directory.
type PathInput struct {
	*TextInput
}

// NewPathInput creates an empty path input.
func NewPathInput() *PathInput {
	return &PathInput{TextInput: NewTextInput()}
}

func (p *PathInput) HandleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEnter {
		expanded, err := homedir.Expand(p.Text())
		if err != nil || expanded == p.Text() {
			return true
		}
		p.SetValue(expanded)
		p.emit(expanded)
		return true
	}
	return p.TextInput.HandleKey(ev)
}
