package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Mr-Dark-debug/gf2div/internal/validation"
)

// inputForm holds the two operand fields. Typed text is kept as is and
// checked by the validator when the form is applied.
type inputForm struct {
	fields  [2]string
	focus   int
	errs    map[validation.Field]string
	general string
}

func newInputForm(dividend, divisor string) inputForm {
	return inputForm{fields: [2]string{dividend, divisor}}
}

func (f *inputForm) values() (string, string) {
	return f.fields[0], f.fields[1]
}

func (f *inputForm) toggleFocus() {
	f.focus = 1 - f.focus
}

func (f *inputForm) insert(s string) {
	f.fields[f.focus] += s
	f.errs = nil
	f.general = ""
}

func (f *inputForm) backspace() {
	r := []rune(f.fields[f.focus])
	if len(r) > 0 {
		f.fields[f.focus] = string(r[:len(r)-1])
	}
}

func (f *inputForm) clear() {
	f.fields[f.focus] = ""
}

// setError attaches err to its field. Errors without a field are shown
// under the form.
func (f *inputForm) setError(err error) {
	f.errs = make(map[validation.Field]string)
	f.general = ""
	var ferr *validation.FieldError
	if errors.As(err, &ferr) {
		f.errs[ferr.Field] = ferr.Message
		if ferr.Field == validation.FieldDivisor {
			f.focus = 1
		} else {
			f.focus = 0
		}
		return
	}
	f.general = err.Error()
}

// renderInput draws the operand form centred in the body.
func renderInput(m *Model, height int) string {
	f := &m.input
	labels := [2]string{"Dividend", "Divisor"}
	keys := [2]validation.Field{validation.FieldDividend, validation.FieldDivisor}

	var lines []string
	lines = append(lines, panelTitleStyle.Render("New Division"), "")

	fieldWidth := clamp(m.width/2, 20, 64)
	for i := range f.fields {
		style := inputFieldStyle
		value := f.fields[i]
		if i == f.focus {
			style = inputFocusedStyle
			value += inputCursorStyle.Render(" ")
		}
		lines = append(lines, inputLabelStyle.Render(labels[i]))
		lines = append(lines, style.Width(fieldWidth).Render(value))
		if msg, ok := f.errs[keys[i]]; ok {
			lines = append(lines, inputErrorStyle.Render(msg))
		} else {
			lines = append(lines, "")
		}
	}

	if f.general != "" {
		lines = append(lines, inputErrorStyle.Render(f.general))
	}
	lines = append(lines, dimStyle.Render("Binary strings only. The divisor must start with 1."))

	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(lines, "\n"))
}
