// Package static provides non-interactive terminal output components.
//
// This package renders parsed git output (status, remotes, ref lists)
// as aligned tables for the gitctl command line.
package static

import (
	"maps"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/gitctl/internal/git"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).PaddingRight(2)
	cellStyle   = lipgloss.NewStyle().PaddingRight(2)

	stateColors = map[string]lipgloss.Style{
		git.StateModified:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		git.StateNew:       lipgloss.NewStyle().Foreground(lipgloss.Color("82")),
		git.StateDeleted:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		git.StateUntracked: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
)

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which automatically
// calculates column widths based on content. No borders are rendered.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// StatusHeaders are the column headers for StatusRows.
var StatusHeaders = []string{"STATE", "PATH"}

// StatusRows flattens a parsed status into one row per path. Known states
// come first in a fixed order, unknown state codes follow sorted.
func StatusRows(s git.Status) [][]string {
	var rows [][]string
	for _, state := range statusOrder(s) {
		label := state
		if style, ok := stateColors[state]; ok {
			label = style.Render(state)
		}
		for _, path := range s[state] {
			rows = append(rows, []string{label, path})
		}
	}
	return rows
}

func statusOrder(s git.Status) []string {
	known := []string{git.StateModified, git.StateNew, git.StateDeleted, git.StateUntracked}
	var order, rest []string
	for _, state := range known {
		if _, ok := s[state]; ok {
			order = append(order, state)
		}
	}
	for state := range s {
		if !slices.Contains(known, state) {
			rest = append(rest, state)
		}
	}
	slices.Sort(rest)
	return append(order, rest...)
}

// RemoteHeaders are the column headers for RemoteRows.
var RemoteHeaders = []string{"REMOTE", "FETCH", "PUSH"}

// RemoteRows renders remotes sorted by name.
func RemoteRows(remotes map[string]git.Remote) [][]string {
	rows := make([][]string, 0, len(remotes))
	for _, name := range slices.Sorted(maps.Keys(remotes)) {
		r := remotes[name]
		rows = append(rows, []string{name, dash(r.Fetch), dash(r.Push)})
	}
	return rows
}

// FormatStatusPlain renders a status as "state<TAB>path" lines for scripts.
func FormatStatusPlain(s git.Status) string {
	var b strings.Builder
	for _, state := range statusOrder(s) {
		for _, path := range s[state] {
			b.WriteString(state)
			b.WriteByte('\t')
			b.WriteString(path)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// FormatRemotesPlain renders remotes as "name<TAB>fetch<TAB>push" lines.
func FormatRemotesPlain(remotes map[string]git.Remote) string {
	var b strings.Builder
	for _, row := range RemoteRows(remotes) {
		b.WriteString(strings.Join(row, "\t"))
		b.WriteByte('\n')
	}
	return b.String()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
