package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type fieldKind int

const (
	numberField fieldKind = iota
	selectField
)

// field is one question in a form: either a numeric text input or a
// fixed-option select cycled with the arrow keys.
type field struct {
	key      string
	prompt   string
	kind     fieldKind
	options  []string
	selected int
	input    textinput.Model
	min      float64
	max      float64
}

func numberQuestion(key, prompt, placeholder string, min, max float64) field {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = 6
	input.Width = 10
	return field{key: key, prompt: prompt, kind: numberField, input: input, min: min, max: max}
}

func selectQuestion(key, prompt string, options []string, selected int) field {
	return field{key: key, prompt: prompt, kind: selectField, options: options, selected: selected}
}

// value returns the field's answer: float64 for numbers (placeholder
// default when left blank), option string for selects.
func (f field) value() (any, error) {
	if f.kind == selectField {
		return f.options[f.selected], nil
	}

	raw := strings.TrimSpace(f.input.Value())
	if raw == "" {
		raw = f.input.Placeholder
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("enter a number")
	}
	if n < f.min || n > f.max {
		return nil, fmt.Errorf("enter a number between %g and %g", f.min, f.max)
	}
	return n, nil
}

// FormModel walks a list of questions one at a time, Elm style.
type FormModel struct {
	title     string
	fields    []field
	index     int
	done      bool
	cancelled bool
	errMsg    string
	help      help.Model
	keys      keyMap
}

// NewForm creates a form over the given questions.
func NewForm(title string, fields []field) *FormModel {
	m := &FormModel{
		title:  title,
		fields: fields,
		help:   help.New(),
		keys:   newKeyMap(),
	}
	m.focus()
	return m
}

// Done reports whether every question was answered.
func (m *FormModel) Done() bool { return m.done }

// Cancelled reports whether the user quit before finishing.
func (m *FormModel) Cancelled() bool { return m.cancelled }

func (m *FormModel) focus() {
	if m.index < len(m.fields) && m.fields[m.index].kind == numberField {
		m.fields[m.index].input.Focus()
	}
}

// Init implements tea.Model.
func (m *FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and advances through the questions.
func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInput(msg)
	}

	current := &m.fields[m.index]

	switch {
	case key.Matches(keyMsg, m.keys.quit):
		m.cancelled = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.back):
		if m.index > 0 {
			m.index--
			m.errMsg = ""
			m.focus()
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.enter):
		if _, err := current.value(); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.errMsg = ""
		if m.index == len(m.fields)-1 {
			m.done = true
			return m, tea.Quit
		}
		m.index++
		m.focus()
		return m, nil

	case current.kind == selectField && key.Matches(keyMsg, m.keys.prev):
		current.selected = (current.selected + len(current.options) - 1) % len(current.options)
		return m, nil

	case current.kind == selectField && key.Matches(keyMsg, m.keys.next):
		current.selected = (current.selected + 1) % len(current.options)
		return m, nil
	}

	return m.updateInput(msg)
}

func (m *FormModel) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.fields[m.index].kind != numberField {
		return m, nil
	}
	var cmd tea.Cmd
	m.fields[m.index].input, cmd = m.fields[m.index].input.Update(msg)
	return m, cmd
}

// View renders the current question.
func (m *FormModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	current := m.fields[m.index]
	var b strings.Builder

	b.WriteString(styles.title.Render(m.title))
	b.WriteString(fmt.Sprintf("\n(%d/%d) %s\n\n", m.index+1, len(m.fields), current.prompt))

	if current.kind == numberField {
		b.WriteString(current.input.View())
	} else {
		for i, option := range current.options {
			cursor := "  "
			label := option
			if i == current.selected {
				cursor = "> "
				label = styles.answer.Render(option)
			}
			b.WriteString(cursor + label + "\n")
		}
	}

	if m.errMsg != "" {
		b.WriteString("\n" + styles.err.Render(m.errMsg))
	}

	b.WriteString("\n\n" + m.help.View(m.keys))
	return b.String()
}

// answers collects every field's value keyed by field key. Only valid
// once Done() is true.
func (m *FormModel) answers() map[string]any {
	out := make(map[string]any, len(m.fields))
	for _, f := range m.fields {
		value, err := f.value()
		if err != nil {
			continue
		}
		out[f.key] = value
	}
	return out
}
