package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// out receives all user-facing output. Tests swap it for a buffer.
var out io.Writer = os.Stdout

// ===== Palette =====

// Adaptive colors pick the light variant on light terminal backgrounds.
var (
	colorAccent = lipgloss.AdaptiveColor{Light: "30", Dark: "37"}
	colorOK     = lipgloss.AdaptiveColor{Light: "28", Dark: "71"}
	colorWarn   = lipgloss.AdaptiveColor{Light: "130", Dark: "214"}
	colorFail   = lipgloss.AdaptiveColor{Light: "124", Dark: "174"}
	colorLink   = lipgloss.AdaptiveColor{Light: "25", Dark: "111"}
	colorText   = lipgloss.AdaptiveColor{Light: "235", Dark: "252"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "244", Dark: "243"}
)

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent).Italic(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorMuted)
	StyleValue     = lipgloss.NewStyle().Foreground(colorText)
	StyleNumber    = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorOK)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorWarn)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleCommand     = lipgloss.NewStyle().Foreground(colorLink)
	styleHeader      = lipgloss.NewStyle().Foreground(colorMuted).Bold(true).Padding(0, 1)
	styleCell        = lipgloss.NewStyle().Foreground(colorText).Padding(0, 1)
	styleKey         = lipgloss.NewStyle().Foreground(colorMuted).Width(14)
)

// ===== Status lines =====

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconArrow   = "→"
)

type statusKind struct {
	icon string
	mark lipgloss.Style
	body *lipgloss.Style // nil leaves the message unstyled
}

var (
	kindSuccess = statusKind{iconSuccess, StyleSuccess, nil}
	kindError   = statusKind{iconError, lipgloss.NewStyle().Foreground(colorFail), nil}
	kindWarning = statusKind{"!", StyleWarning, &StyleWarning}
	kindInfo    = statusKind{"›", StyleDim, nil}
)

func printStatus(k statusKind, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if k.body != nil {
		msg = k.body.Render(msg)
	}
	fmt.Fprintf(out, "%s %s\n", k.mark.Render(k.icon), msg)
}

func printSuccess(format string, args ...any) { printStatus(kindSuccess, format, args...) }
func printError(format string, args ...any)   { printStatus(kindError, format, args...) }
func printWarning(format string, args ...any) { printStatus(kindWarning, format, args...) }
func printInfo(format string, args ...any)    { printStatus(kindInfo, format, args...) }

// printDetail prints a muted, indented line under a status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(out, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile points at a written file.
func printFile(path string) {
	fmt.Fprintf(out, "  %s %s\n", StyleDim.Render(iconArrow), StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(out, styleKey.Render(key)+" "+StyleValue.Render(value))
}

func printNextStep(description, cmd string) {
	fmt.Fprintf(out, "%s %s\n", StyleDim.Render(description+":"), styleCommand.Render(cmd))
}

func printRaw(s string) { fmt.Fprint(out, s) }

func printNewline() { fmt.Fprintln(out) }

// ===== Tables =====

// headerRow is the row index lipgloss tables pass for the header.
const headerRow = -1

// printTable renders rows under headers. Columns whose cells are all
// numeric ("12", "3/4", "640x480") are right-aligned.
func printTable(headers []string, rows [][]string) {
	numeric := make([]bool, len(headers))
	for col := range headers {
		numeric[col] = len(rows) > 0
		for _, r := range rows {
			if col < len(r) && !isNumericCell(r[col]) {
				numeric[col] = false
				break
			}
		}
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := styleCell
			if row == headerRow {
				s = styleHeader
			}
			if col < len(numeric) && numeric[col] {
				return s.Align(lipgloss.Right)
			}
			return s
		})
	fmt.Fprintln(out, t.Render())
}

func isNumericCell(s string) bool {
	if s == "" || s == "-" {
		return true
	}
	return strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '/' && r != 'x'
	}) < 0
}
