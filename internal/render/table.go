// Package render formats visualization records for a terminal.
package render

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/MereWhiplash/wordspace/internal/types"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	clusterColors = []lipgloss.Color{"12", "10", "13", "11", "14", "9"}
)

// Table renders one row per record: word, cluster, coordinates, similarity
func Table(records []types.Record) string {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			r.Word,
			strconv.Itoa(r.Cluster),
			formatFloat(r.Coordinates[0]),
			formatFloat(r.Coordinates[1]),
			formatFloat(r.Coordinates[2]),
			formatSimilarity(r),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("WORD", "CLUSTER", "X", "Y", "Z", "SIMILARITY").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 1 && row >= 0 && row < len(records) {
				color := clusterColors[records[row].Cluster%len(clusterColors)]
				return cellStyle.Foreground(color)
			}
			return cellStyle
		})

	return t.String()
}

// Report renders a title line, the table and a note on dropped words
func Report(centralWord string, words []string, records []types.Record) string {
	title := titleStyle.Render(fmt.Sprintf("%d words around %q", len(words), centralWord))
	out := title + "\n" + Table(records)

	if dropped := len(words) - len(records); dropped > 0 {
		out += "\n" + noteStyle.Render(fmt.Sprintf("%d word(s) had no embedding and were left out", dropped))
	}
	return out
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 4, 64)
}

func formatSimilarity(r types.Record) string {
	if !r.HasSimilarity() {
		return "-"
	}
	return formatFloat(*r.Similarity)
}
