package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-rack-editor/internal/config"
)

func TestStatusBarLine(t *testing.T) {
	s := NewStatusBar(config.ScreenWidth, config.ScreenHeight)
	s.SetInfo(StatusInfo{Title: "Rack Editor 0.0.1 - r.json *", Modules: 3, Selected: 1, Zoom: 1.1})
	assert.Equal(t, "Rack Editor 0.0.1 - r.json * | modules: 3 | selected: 1 | zoom: 110%", s.Line())
}

func TestStatusBarMessageExpires(t *testing.T) {
	s := NewStatusBar(config.ScreenWidth, config.ScreenHeight)
	_, ok := s.Message()
	assert.False(t, ok)

	s.Notify("saved default.json")
	msg, ok := s.Message()
	assert.True(t, ok)
	assert.Equal(t, "saved default.json", msg)

	assert.Equal(t, 1.0, s.messageAlpha())
	s.Update(config.MessageTTL - 0.5)
	_, ok = s.Message()
	assert.True(t, ok)
	assert.InDelta(t, 0.5, s.messageAlpha(), 1e-9)

	s.Update(config.MessageTTL)
	_, ok = s.Message()
	assert.False(t, ok)

	s.Error(errors.New("load nope: not found"))
	msg, ok = s.Message()
	assert.True(t, ok)
	assert.Equal(t, "load nope: not found", msg)
	assert.True(t, s.isError)
}

func TestPromptEditing(t *testing.T) {
	p := NewPrompt("Save as:", "default", config.ScreenWidth, config.ScreenHeight)
	assert.Equal(t, "default", p.Value())

	for range "default" {
		p.Backspace()
	}
	p.Backspace()
	assert.Equal(t, "", p.Value())

	p.AppendChars([]rune("  my\track \n"))
	assert.Equal(t, "myrack", p.Value())

	p.SetError("bad name")
	assert.Equal(t, "bad name", p.ErrorMessage())
	p.AppendChars([]rune("2"))
	assert.Empty(t, p.ErrorMessage())
}

func TestPromptLengthLimit(t *testing.T) {
	p := NewPrompt("Open:", "", config.ScreenWidth, config.ScreenHeight)
	p.AppendChars([]rune(strings.Repeat("x", maxInputLen+10)))
	assert.Len(t, p.Value(), maxInputLen)
}

func TestPromptButtonsInsideBox(t *testing.T) {
	p := NewPrompt("Open:", "", config.ScreenWidth, config.ScreenHeight)
	assert.True(t, p.Confirm.Rect.In(p.rect))
	assert.True(t, p.Cancel.Rect.In(p.rect))
	assert.False(t, p.Confirm.Rect.Overlaps(p.Cancel.Rect))
	c := p.Confirm.Rect.Min
	assert.True(t, p.Confirm.Contains(c.X+1, c.Y+1))
	assert.False(t, p.Confirm.Contains(p.Confirm.Rect.Max.X, c.Y+1))
}

func TestTextWidth(t *testing.T) {
	assert.Equal(t, 7*5, TextWidth(DefaultFace, "hello"))
}
