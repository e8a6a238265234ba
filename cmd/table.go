package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/kasuboski/rawz/pkg/download"
	"github.com/kasuboski/rawz/pkg/library"
	"github.com/kasuboski/rawz/pkg/manager"
	"github.com/kasuboski/rawz/pkg/release"
	"github.com/kasuboski/rawz/pkg/subtitles"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func printRendered(rendered string) {
	fmt.Fprintln(os.Stdout, rendered)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func groupRows(group release.EpisodeGroup) [][]string {
	rows := make([][]string, 0, group.Len())
	for _, e := range group.Entries() {
		rows = append(rows, []string{e.ID.String(), e.Tag, strconv.Itoa(e.Seeders), e.RemoteName})
	}
	return rows
}

func renderGroup(group release.EpisodeGroup) string {
	return renderTable([]string{"Episode", "Tag", "Seeders", "Release"}, groupRows(group), []columnAlignment{alignLeft, alignLeft, alignRight})
}

func printGroup(group release.EpisodeGroup) {
	printRendered(renderGroup(group))
}

func reportRows(report manager.Report) [][]string {
	rows := make([][]string, 0, len(report.Results))
	for _, r := range report.Results {
		rows = append(rows, []string{r.Episode, string(r.Outcome), r.Release.RemoteName, errString(r.Err)})
	}
	return rows
}

func renderReport(report manager.Report) string {
	return renderTable([]string{"Episode", "Outcome", "Release", "Error"}, reportRows(report), nil)
}

func printReport(report manager.Report) {
	printRendered(renderReport(report))
}

func pairRows(results []library.PairResult) [][]string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{r.Episode, string(r.Status), r.NewRawPath, r.NewSubPath, errString(r.Err)})
	}
	return rows
}

func renderPairs(results []library.PairResult) string {
	return renderTable([]string{"Episode", "Status", "Raw", "Subtitle", "Error"}, pairRows(results), nil)
}

func printPairs(results []library.PairResult) {
	printRendered(renderPairs(results))
}

func transferRows(transfers []download.Transfer) [][]string {
	rows := make([][]string, 0, len(transfers))
	for _, t := range transfers {
		rows = append(rows, []string{
			t.Name,
			fmt.Sprintf("%.1f%%", t.Progress*100),
			humanize.Bytes(uint64(max(t.Size, 0))),
			humanize.Bytes(uint64(max(t.Speed, 0))) + "/s",
			strconv.FormatBool(t.Done),
		})
	}
	return rows
}

func renderTransfers(transfers []download.Transfer) string {
	return renderTable([]string{"Name", "Progress", "Size", "Speed", "Done"}, transferRows(transfers),
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight})
}

func printTransfers(transfers []download.Transfer) {
	printRendered(renderTransfers(transfers))
}

func printCandidates(candidates []subtitles.Entry) {
	rows := make([][]string, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, []string{c.Name, c.URL})
	}
	printRendered(renderTable([]string{"Candidate", "URL"}, rows, nil))
}
