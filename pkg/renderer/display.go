package renderer

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/nikogura/interview-roadmap/pkg/roadmap"
	"github.com/pkg/errors"
)

const ruleWidth = 60

// DisplayOptions controls console rendering.
type DisplayOptions struct {
	Color bool
}

// ShouldColorize reports whether w is a terminal.
func ShouldColorize(w io.Writer) (result bool) {
	file, ok := w.(*os.File)
	if !ok {
		return result
	}
	fd := file.Fd()
	result = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return result
}

type palette struct {
	title lipgloss.Style
	label lipgloss.Style
	note  lipgloss.Style
	plain bool
}

func newPalette(w io.Writer, color bool) (p palette) {
	if !color {
		p.plain = true
		return p
	}
	r := lipgloss.NewRenderer(w)
	p.title = r.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	p.label = r.NewStyle().Bold(true)
	p.note = r.NewStyle().Italic(true).Foreground(lipgloss.Color("11"))
	return p
}

func (p palette) render(style lipgloss.Style, s string) (out string) {
	if p.plain {
		out = s
		return out
	}
	out = style.Render(s)
	return out
}

// Display prints a human-readable summary of the roadmap.
func Display(w io.Writer, rm roadmap.Roadmap, opts DisplayOptions) (err error) {
	p := newPalette(w, opts.Color)
	rule := strings.Repeat("=", ruleWidth)

	var b strings.Builder
	b.WriteString("\n" + rule + "\n")
	b.WriteString(p.render(p.title, "ROADMAP SUMMARY") + "\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "%s %s\n", p.render(p.label, "Company:"), rm.Company)
	fmt.Fprintf(&b, "%s %s\n", p.render(p.label, "Role:"), rm.Role)
	fmt.Fprintf(&b, "%s %s\n", p.render(p.label, "Difficulty:"), rm.Difficulty)
	fmt.Fprintf(&b, "%s %d\n", p.render(p.label, "Total Rounds:"), len(rm.Rounds))

	b.WriteString("\n" + p.render(p.label, "Interview Rounds:") + "\n")
	b.WriteString(roundsTable(rm.Rounds) + "\n")

	fmt.Fprintf(&b, "\n%s %s\n", p.render(p.label, "Recommended Study Order:"), strings.Join(rm.RecommendedOrder, ", "))
	if len(rm.Evidence.KeySkills) > 0 {
		fmt.Fprintf(&b, "%s %s\n", p.render(p.label, "Key Skills from JD:"), strings.Join(rm.Evidence.KeySkills, ", "))
	}
	if rm.Note != "" {
		fmt.Fprintf(&b, "%s\n", p.render(p.note, "Note: "+rm.Note))
	}
	b.WriteString(rule + "\n")

	_, err = io.WriteString(w, b.String())
	if err != nil {
		err = errors.Wrap(err, "failed to write roadmap summary")
		return err
	}
	return err
}

func roundsTable(rounds []roadmap.Round) (out string) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Round", "Topics"})
	for i, round := range rounds {
		tw.AppendRow(table.Row{strconv.Itoa(i + 1), round.Type, strings.Join(round.Topics, ", ")})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, WidthMax: 60},
	})
	out = tw.Render()
	return out
}
