package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/ByLCY/folio/document"
	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/renderer/record"
)

var (
	colorCyan = lipgloss.Color("36")
	colorGray = lipgloss.Color("245")
	colorDim  = lipgloss.Color("240")

	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
)

func (c *CLI) inspectCommand() *cobra.Command {
	var data string
	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print the pages and sections of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := loadData(data)
			if err != nil {
				return err
			}
			built, err := buildFile(args[0], values)
			if err != nil {
				return err
			}
			rec := record.New()
			rec.Meta = built.Meta
			settings := c.cfg.Settings(loggerFromContext(cmd.Context()))
			ts := newCanvasRenderer(built, filepath.Dir(args[0]))
			rep, err := document.GenerateMerged(rec, ts, built.Parts, built.Strategy, settings)
			if err != nil {
				return err
			}
			return writeInspection(cmd.OutOrStdout(), args[0], rec.Result(), rep)
		},
	}
	cmd.Flags().StringVarP(&data, "data", "d", "", "data bound to the document: inline JSON, .json or .toml file")
	return cmd
}

func writeInspection(w io.Writer, name string, res *record.Result, rep *document.Report) error {
	pages := make([][]string, 0, len(res.Pages))
	for _, p := range res.Pages {
		pages = append(pages, []string{
			strconv.Itoa(p.Number),
			fmt.Sprintf("%.0f×%.0f mm", p.Width*layout.PtToMm, p.Height*layout.PtToMm),
			strconv.Itoa(len(p.Texts)),
			strconv.Itoa(len(p.Images)),
			strconv.Itoa(len(p.Links)),
		})
	}
	sections := make([][]string, 0, len(rep.Sections))
	for _, s := range rep.Sections {
		sections = append(sections, []string{
			s.Name,
			strconv.Itoa(s.DocumentID + 1),
			strconv.Itoa(s.PageStart),
			strconv.Itoa(s.PageEnd),
		})
	}

	out := styleTitle.Render(fmt.Sprintf("%s: %d pages in %d parts", name, rep.Pages, len(rep.Parts))) + "\n"
	out += newTable([]string{"Page", "Size", "Texts", "Images", "Links"}, pages).Render() + "\n"
	if len(sections) > 0 {
		out += newTable([]string{"Section", "Part", "Start", "End"}, sections).Render() + "\n"
	}
	if len(rep.OverflowPages) > 0 {
		out += fmt.Sprintf("overflow on pages %v\n", rep.OverflowPages)
	}
	_, err := io.WriteString(w, out)
	return err
}

func newTable(headers []string, rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row < 0 {
				return styleHeader.Padding(0, 1)
			}
			return styleCell
		})
}
