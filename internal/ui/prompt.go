// internal/ui/prompt.go
package ui

import (
	"image"
	"strings"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"go-rack-editor/internal/config"
)

const maxInputLen = 64

// Prompt is a one-line text entry box centred on screen.
type Prompt struct {
	Label   string
	Confirm *Button
	Cancel  *Button

	input   []rune
	errMsg  string
	face    font.Face
	rect    image.Rectangle
	blinkAt float64
}

func NewPrompt(label, initial string, screenWidth, screenHeight int) *Prompt {
	x := (screenWidth - config.PromptWidth) / 2
	y := (screenHeight - config.PromptHeight) / 2
	rect := image.Rect(x, y, x+config.PromptWidth, y+config.PromptHeight)

	btnY := rect.Max.Y - 28
	p := &Prompt{
		Label:   label,
		Confirm: NewButton(image.Rect(rect.Max.X-170, btnY, rect.Max.X-90, btnY+22), "OK"),
		Cancel:  NewButton(image.Rect(rect.Max.X-85, btnY, rect.Max.X-5, btnY+22), "Cancel"),
		face:    DefaultFace,
		rect:    rect,
	}
	p.AppendChars([]rune(initial))
	return p
}

// AppendChars adds typed characters, dropping control characters and
// anything past the length limit.
func (p *Prompt) AppendChars(rs []rune) {
	for _, r := range rs {
		if unicode.IsControl(r) || len(p.input) >= maxInputLen {
			continue
		}
		p.input = append(p.input, r)
	}
	p.errMsg = ""
}

func (p *Prompt) Backspace() {
	if len(p.input) > 0 {
		p.input = p.input[:len(p.input)-1]
	}
	p.errMsg = ""
}

// Value is the trimmed input.
func (p *Prompt) Value() string {
	return strings.TrimSpace(string(p.input))
}

// SetError shows msg under the input until the next keystroke.
func (p *Prompt) SetError(msg string) {
	p.errMsg = msg
}

func (p *Prompt) ErrorMessage() string {
	return p.errMsg
}

func (p *Prompt) Update(deltaTime float64) {
	p.blinkAt += deltaTime
}

func (p *Prompt) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	vector.DrawFilledRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), config.DimOverlayColor, false)

	x, y := float32(p.rect.Min.X), float32(p.rect.Min.Y)
	w, h := float32(p.rect.Dx()), float32(p.rect.Dy())
	vector.DrawFilledRect(screen, x, y, w, h, config.PromptColor, false)
	vector.StrokeRect(screen, x, y, w, h, 2, config.PromptBorderColor, false)

	drawText(screen, p.Label, p.face, p.rect.Min.X+10, p.rect.Min.Y+8, config.TextLightColor)

	field := string(p.input)
	if int(p.blinkAt*2)%2 == 0 {
		field += "_"
	}
	vector.DrawFilledRect(screen, x+10, y+28, w-20, 20, config.BackgroundColor, false)
	drawText(screen, field, p.face, p.rect.Min.X+14, p.rect.Min.Y+31, config.TextLightColor)

	if p.errMsg != "" {
		drawText(screen, p.errMsg, p.face, p.rect.Min.X+10, p.rect.Max.Y-24, config.ErrorTextColor)
	}
	p.Confirm.Draw(screen)
	p.Cancel.Draw(screen)
}
