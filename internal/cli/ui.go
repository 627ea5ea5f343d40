package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
	colorAmber = lipgloss.Color("214")
)

var (
	StyleTitle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim      = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue    = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber   = lipgloss.NewStyle().Foreground(colorCyan)
	StyleSelected = lipgloss.NewStyle().Foreground(colorAmber)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleHeader      = lipgloss.NewStyle().Bold(true).Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(w io.Writer, label, path string) {
	fmt.Fprintf(w, "  %-8s %s %s\n", label, StyleDim.Render(iconArrow), StyleValue.Render(path))
}

// printTable writes rows as aligned columns under a bold header.
func printTable(w io.Writer, header []string, rows [][]string, style func(row int) lipgloss.Style) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, r := range rows {
		for i, cell := range r {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	line := func(cells []string, st lipgloss.Style) {
		out := " "
		for i, cell := range cells {
			out += " " + st.Width(widths[i]).Render(cell)
		}
		fmt.Fprintln(w, out)
	}
	line(header, styleHeader)
	for i, r := range rows {
		st := StyleValue
		if style != nil {
			st = style(i)
		}
		line(r, st)
	}
}
