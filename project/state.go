package project

import "fmt"

// State is everything one editing session owns.
type State struct {
	Form         Form
	Theme        Theme
	Blocks       []Block
	AutoFillCode bool
}

// NewState returns the first-load state: default form and theme, no blocks.
func NewState() State {
	return State{Form: DefaultForm(), Theme: DefaultTheme()}
}

// Clone copies s deeply enough that edits to the copy never reach s.
// Upload payloads are shared; they are never mutated after intake.
func (s State) Clone() State {
	c := s
	c.Blocks = make([]Block, len(s.Blocks))
	for i, b := range s.Blocks {
		c.Blocks[i] = b.clone()
	}
	return c
}

// Field returns the form or theme value stored under an interchange key.
func (s *State) Field(key string) (string, bool) {
	if p, ok := s.Form.fields()[key]; ok {
		return *p, true
	}
	if p, ok := s.Theme.fields()[key]; ok {
		return *p, true
	}
	return "", false
}

// SetField sets a form or theme value by interchange key.
func (s *State) SetField(key, value string) error {
	if p, ok := s.Form.fields()[key]; ok {
		*p = value
		return nil
	}
	if p, ok := s.Theme.fields()[key]; ok {
		*p = value
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownField, key)
}

// CodeBlocks returns the code blocks in list order.
func (s *State) CodeBlocks() []*CodeBlock {
	var out []*CodeBlock
	for _, b := range s.Blocks {
		if cb, ok := b.(*CodeBlock); ok {
			out = append(out, cb)
		}
	}
	return out
}
