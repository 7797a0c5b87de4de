// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling for the gameshell console.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection. A Theme binds the styles to one output through its own
lipgloss.Renderer, so styled stdout and plain piped output can coexist.

# Colors

  - Cyan - Headings
  - Purple - Command names
  - Emerald - Replies
  - Amber - Warnings and argument hints
  - Rose - Errors

# Usage

	theme := styles.NewTheme(os.Stdout, cfg.UI.NoColor)
	fmt.Println(theme.Reply.Render(reply))
	fmt.Fprintln(os.Stderr, theme.Error.Render(err.Error()))

Passing noColor forces the termenv Ascii profile regardless of what the
terminal supports.
*/
package styles
