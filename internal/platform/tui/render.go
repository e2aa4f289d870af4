package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/reef-runner/internal/core"
	"github.com/vovakirdan/reef-runner/internal/games/runner"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// bandColors colors the quiz countdown bar by urgency.
var bandColors = map[runner.Band]string{
	runner.BandOK:     "10",
	runner.BandWarn:   "11",
	runner.BandDanger: "9",
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	artStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// renderQuizPanel draws the question overlay shown below the frozen field.
func renderQuizPanel(v runner.QuizView, bar progress.Model, width int) string {
	var b strings.Builder

	header := strings.ToUpper(v.Kind.String()) + " QUIZ"
	if v.Kind == runner.QuizRiddle {
		header = "RIDDLE ORB"
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n")

	if v.Art != "" {
		b.WriteString(artStyle.Render(strings.TrimRight(v.Art, "\n")))
		b.WriteString("\n")
	}
	b.WriteString(v.Prompt)
	b.WriteString("\n\n")

	for i, c := range v.Choices {
		fmt.Fprintf(&b, "  [%d] %s\n", i+1, c)
	}

	if v.Timed {
		bar.FullColor = bandColors[v.Band]
		bar.Width = max(10, width-16)
		fmt.Fprintf(&b, "\n%s %2ds", bar.ViewAs(v.Fraction), v.SecondsLeft)
	} else {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("no time limit"))
	}

	return panelStyle.Width(max(20, width-2)).Render(b.String())
}

// renderMenu draws a titled list with the cursor row highlighted.
func renderMenu(title, subtitle string, items []string, cursor, width int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(title), width))
	b.WriteString("\n\n")
	b.WriteString(centerText(subtitle, width))
	b.WriteString("\n\n")

	for i, item := range items {
		line := "  " + item + "  "
		if i == cursor {
			line = cursorStyle.Render("> " + item + " ")
		}
		b.WriteString(centerText(line, width))
		b.WriteString("\n")
	}
	return b.String()
}

// centerText centers text within the given width, ignoring ANSI sequences.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
