// Package report renders analysis results for people.
//
// Each opportunity is one line with its value/cost ratio, family, how many
// characters are missing, the languages they would add, the characters
// themselves, and the value and cost behind the ratio. A summary follows.
// Styling adapts to the output: colors are dropped when w is not a
// terminal or NO_COLOR is set.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/glyphgap/glyphgap/pkg/opportunity"
	"github.com/glyphgap/glyphgap/pkg/pipeline"
)

// Options controls rendering.
type Options struct {
	Verbose bool // per-language details under each entry
	Limit   int  // list at most this many entries; 0 lists all
	Table   bool // bordered table instead of one line per entry
}

type styles struct {
	ratio  lipgloss.Style
	family lipgloss.Style
	chars  lipgloss.Style
	dim    lipgloss.Style
	header lipgloss.Style
	warn   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		ratio:  r.NewStyle().Foreground(lipgloss.Color("36")).Bold(true),
		family: r.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
		chars:  r.NewStyle().Foreground(lipgloss.Color("220")),
		dim:    r.NewStyle().Foreground(lipgloss.Color("245")),
		header: r.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
		warn:   r.NewStyle().Foreground(lipgloss.Color("220")),
	}
}

// Render writes the report for res to w.
func Render(w io.Writer, res *pipeline.Result, opts Options) error {
	r := lipgloss.NewRenderer(w)
	st := newStyles(r)

	opps := res.Opportunities
	if opts.Limit > 0 && opts.Limit < len(opps) {
		opps = opps[:opts.Limit]
	}

	var b strings.Builder
	if opts.Table && len(opps) > 0 {
		b.WriteString(renderTable(opps, st))
		b.WriteString("\n")
	} else {
		for _, o := range opps {
			b.WriteString(entryLine(o, st))
			b.WriteString("\n")
			if opts.Verbose {
				writeDetails(&b, o, res.Languages, st)
			}
		}
	}
	if hidden := len(res.Opportunities) - len(opps); hidden > 0 {
		b.WriteString(st.dim.Render(fmt.Sprintf("... %d more not shown (--limit %d)", hidden, opts.Limit)))
		b.WriteString("\n")
	}
	if len(opps) > 0 {
		b.WriteString("\n")
	}
	writeSummary(&b, res, st)

	_, err := io.WriteString(w, b.String())
	return err
}

// entryLine formats one opportunity, e.g.
//
//	500.0  Go Sans needs 1 to support [xx_Hani] : 中 value 500.0 cost 1.1
func entryLine(o opportunity.Opportunity, st styles) string {
	return fmt.Sprintf("%s  %s needs %d to support [%s] : %s %s",
		st.ratio.Render(fmt.Sprintf("%7.1f", o.Ratio())),
		st.family.Render(o.Family),
		len(o.Missing),
		strings.Join(o.Languages, " "),
		st.chars.Render(o.MissingString()),
		st.dim.Render(fmt.Sprintf("value %.1f cost %.1f", o.Value, o.Cost)),
	)
}

func writeDetails(b *strings.Builder, o opportunity.Opportunity, langs map[string]opportunity.Language, st styles) {
	for _, code := range o.Languages {
		info := Describe(langs[code])
		if info.Code == "" {
			info.Code = code
		}
		name := info.Name
		if name == "" {
			name = "?"
		}
		script := info.Script
		if script == "" {
			script = "?"
		}
		line := fmt.Sprintf("%-14s %-20s %-4s %15s speakers  x%g",
			info.Code, name, script, humanize.Comma(info.Population), info.Multiplier)
		b.WriteString("         ")
		b.WriteString(st.dim.Render(line))
		b.WriteString("\n")
	}
}

func renderTable(opps []opportunity.Opportunity, st styles) string {
	rows := make([][]string, len(opps))
	for i, o := range opps {
		rows[i] = []string{
			fmt.Sprintf("%.1f", o.Ratio()),
			o.Family,
			o.MissingString(),
			strings.Join(o.Languages, " "),
			fmt.Sprintf("%.1f", o.Value),
			fmt.Sprintf("%.1f", o.Cost),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(st.dim).
		Headers("Ratio", "Family", "Missing", "Languages", "Value", "Cost").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return st.header
			case col == 0:
				return st.ratio
			case col == 2:
				return st.chars
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

func writeSummary(b *strings.Builder, res *pipeline.Result, st styles) {
	s := res.Stats
	fmt.Fprintf(b, "%d opportunities to add <= %d characters and support at least one new language\n",
		len(res.Opportunities), s.MaxMissing)
	fmt.Fprintf(b, "%d families skipped by --family-filter\n", s.FilterSkipped)
	if n := s.Skipped(); n > 0 {
		line := fmt.Sprintf("%d families skipped due to load errors (%d descriptors, %d fonts)",
			n, s.MetadataErrors, s.FontErrors)
		b.WriteString(st.warn.Render(line))
		b.WriteString("\n")
	}

	pop := "popularity: " + s.PopularitySource
	if s.Unranked > 0 {
		pop += fmt.Sprintf(", %d families unranked", s.Unranked)
	}
	b.WriteString(st.dim.Render(pop))
	b.WriteString("\n")
}
