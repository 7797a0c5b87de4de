// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/gameshell/internal/cmdmat"
	"github.com/jeranaias/gameshell/internal/ui/styles"
	"github.com/jeranaias/gameshell/internal/util"
)

// =============================================================================
// COMMAND TABLES
// =============================================================================

// commandRow splits a command into its name and the arguments its deciders
// expect.
type commandRow struct {
	Name string
	Args string
}

func commandRows(cmds []cmdmat.Command) []commandRow {
	rows := make([]commandRow, len(cmds))
	for i, cmd := range cmds {
		name := strings.Join(cmd.Path, " ")
		args := strings.TrimSpace(strings.TrimPrefix(cmd.Usage, name))
		rows[i] = commandRow{Name: name, Args: args}
	}
	return rows
}

// RenderCommands writes an aligned table of commands.
func RenderCommands(w io.Writer, theme *styles.Theme, cmds []cmdmat.Command, width int) {
	rows := commandRows(cmds)

	names := make([]string, len(rows))
	for i, row := range rows {
		names[i] = row.Name
	}
	nameWidth := max(util.MaxWidth(names), len("COMMAND"))

	fmt.Fprintln(w, theme.Heading.Render(fmt.Sprintf("%s  %s", util.PadRight("COMMAND", nameWidth), "ARGUMENTS")))
	fmt.Fprintln(w, theme.Separator(min(width, 70)))

	for _, row := range rows {
		args := row.Args
		if avail := width - nameWidth - 2; avail > 0 {
			args = util.TruncateWidth(args, avail)
		}
		fmt.Fprintf(w, "%s  %s\n",
			theme.Command.Render(util.PadRight(row.Name, nameWidth)),
			theme.Usage.Render(args))
	}
}

// CommandsMarkdown returns the commands as a markdown table.
func CommandsMarkdown(cmds []cmdmat.Command) string {
	var b strings.Builder
	b.WriteString("| Command | Arguments |\n")
	b.WriteString("| --- | --- |\n")
	for _, row := range commandRows(cmds) {
		fmt.Fprintf(&b, "| `%s` | %s |\n", escapeCell(row.Name), escapeCell(row.Args))
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// renderMarkdown renders markdown for terminal display. Output that is not
// a terminal, or a renderer that fails, gets the markdown unchanged.
func renderMarkdown(w io.Writer, content string, noColor bool) string {
	if !isTerminal(w) {
		return content
	}

	style := glamour.WithAutoStyle()
	if noColor {
		style = glamour.WithStandardStyle("notty")
	}
	renderer, err := glamour.NewTermRenderer(
		style,
		glamour.WithWordWrap(terminalWidth(w)),
	)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
