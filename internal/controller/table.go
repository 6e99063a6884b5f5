package controller

import (
	"bytes"
	"fmt"

	m "github.com/mouse-blink/resub/internal/model"
	"github.com/olekukonko/tablewriter"
)

// renderMatchTable formats the list-command output shared by both UIs.
func renderMatchTable(matches []m.FileMatch) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Path", "Matches"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	total := 0

	for _, match := range matches {
		table.Append([]string{string(match.Path), fmt.Sprintf("%d", match.Matches)})

		total += match.Matches
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(matches)),
		fmt.Sprintf("%d", total),
	})

	table.Render()

	return buf.String()
}
