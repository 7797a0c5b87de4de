// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"

	"github.com/jeranaias/gameshell/internal/gameshell"
	"github.com/jeranaias/gameshell/internal/ui/styles"
	"github.com/jeranaias/gameshell/internal/util"
)

// WriteCompletion prints completion candidates one per line with their
// usage aligned. A pending argument hint is printed instead when showHints
// is set.
func WriteCompletion(w io.Writer, theme *styles.Theme, c gameshell.Completion, showHints bool) error {
	if c.Err != nil {
		return c.Err
	}
	if c.Hint != "" {
		if showHints {
			fmt.Fprintln(w, theme.Hint.Render(c.Hint))
		}
		return nil
	}

	values := make([]string, len(c.Candidates))
	for i, cand := range c.Candidates {
		values[i] = cand.Value
	}
	width := util.MaxWidth(values)

	for _, cand := range c.Candidates {
		if cand.Description == "" {
			fmt.Fprintln(w, theme.Command.Render(cand.Value))
			continue
		}
		fmt.Fprintf(w, "%s  %s\n",
			theme.Command.Render(util.PadRight(cand.Value, width)),
			theme.Usage.Render(cand.Description))
	}
	return nil
}
