package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gogpu/imgedit/render"
	"github.com/gogpu/imgedit/scene"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8B5CF6"))
	keyStyle   = lipgloss.NewStyle().Faint(true).Width(8)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	delStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
	addStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"})
	faint      = lipgloss.NewStyle().Faint(true)
)

// Report summarizes one run.
type Report struct {
	In, Out         string
	Format          render.Format
	InSize, OutSize [2]int
	Bytes           int
	InLuma, OutLuma float64
	Steps           []string
	Before, After   scene.State
}

// Render formats the report for a terminal.
func (r Report) Render() string {
	row := func(k, v string) string {
		return keyStyle.Render(k) + " " + v
	}
	rows := []string{
		row("input", fmt.Sprintf("%s (%dx%d)", r.In, r.InSize[0], r.InSize[1])),
		row("output", fmt.Sprintf("%s (%dx%d, %s, %d bytes)", r.Out, r.OutSize[0], r.OutSize[1], r.Format, r.Bytes)),
	}
	steps := "none"
	if len(r.Steps) > 0 {
		steps = strings.Join(r.Steps, ", ")
	}
	rows = append(rows,
		row("luma", fmt.Sprintf("%.3f -> %.3f", r.InLuma, r.OutLuma)),
		row("steps", steps),
	)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("imgedit"))
	sb.WriteByte('\n')
	sb.WriteString(boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
	sb.WriteByte('\n')
	sb.WriteString(renderDiff(scene.Diff(r.Before, r.After)))
	return sb.String()
}

// renderDiff colors the removed and added lines of a state diff.
func renderDiff(diff string) string {
	if diff == "" {
		return faint.Render("no changes")
	}
	var sb strings.Builder
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "- "):
			sb.WriteString(delStyle.Render(line))
		case strings.HasPrefix(line, "+ "):
			sb.WriteString(addStyle.Render(line))
		default:
			sb.WriteString(line)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
