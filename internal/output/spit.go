// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"

	"github.com/staranto/cachefsgo/internal/attrs"
	"github.com/staranto/cachefsgo/internal/filters"
)

// SliceDiceSpit orchestrates filtering, sorting, transforming and rendering
// of a JSON row array according to command flags and attribute
// specifications.
func SliceDiceSpit(raw []byte, al attrs.AttrList, cmd *cli.Command, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	// If raw, just dump it and go home.
	format := cmd.String("output")
	if format == "raw" {
		_, _ = w.Write(raw)
		return
	}

	rows := gjson.ParseBytes(raw).Array()

	// Filter.
	fl := filters.BuildFilters(cmd.String("filter"))
	kept := make([]gjson.Result, 0, len(rows))
	for _, row := range rows {
		if filters.MatchAll(fl, row) {
			kept = append(kept, row)
		}
	}
	log.Debugf("filters kept %d of %d rows", len(kept), len(rows))

	// Sort. A leading '-' on a key sorts that key descending.
	sortRows(kept, cmd.String("sort"))

	switch format {
	case "json":
		spitJSON(kept, al, w)
	case "yaml":
		spitYAML(kept, al, w)
	case "table":
		spitTable(kept, al, cmd, w)
	default:
		spitText(kept, al, cmd, w)
	}
}

func sortRows(rows []gjson.Result, spec string) {
	if spec == "" {
		return
	}

	keys := strings.Split(spec, ",")
	sort.SliceStable(rows, func(i, j int) bool {
		for _, key := range keys {
			key = strings.TrimSpace(key)
			desc := strings.HasPrefix(key, "-")
			key = strings.TrimPrefix(key, "-")

			a, b := rows[i].Get(key), rows[j].Get(key)
			var less, more bool
			if a.Type == gjson.Number && b.Type == gjson.Number {
				less, more = a.Float() < b.Float(), a.Float() > b.Float()
			} else {
				less, more = a.String() < b.String(), a.String() > b.String()
			}

			if less {
				return !desc
			}
			if more {
				return desc
			}
		}
		return false
	})
}

// project renders one row into display strings, one per attr, transforms
// applied.
func project(row gjson.Result, al attrs.AttrList) []string {
	out := make([]string, 0, len(al))
	for _, a := range al {
		out = append(out, a.Transform(row.Get(a.Key).Value()))
	}
	return out
}

// structured keeps the raw (untransformed) values keyed by output name, for
// the machine formats.
func structured(rows []gjson.Result, al attrs.AttrList) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		m := make(map[string]interface{}, len(al))
		for _, a := range al {
			m[a.OutputKey] = row.Get(a.Key).Value()
		}
		out = append(out, m)
	}
	return out
}

func spitJSON(rows []gjson.Result, al attrs.AttrList, w io.Writer) {
	b, err := json.MarshalIndent(structured(rows, al), "", "  ")
	if err != nil {
		log.WithError(err).Error("failed to marshal output")
		return
	}
	fmt.Fprintln(w, string(b))
}

func spitYAML(rows []gjson.Result, al attrs.AttrList, w io.Writer) {
	b, err := yaml.Marshal(structured(rows, al))
	if err != nil {
		log.WithError(err).Error("failed to marshal output")
		return
	}
	_, _ = w.Write(b)
}

func spitText(rows []gjson.Result, al attrs.AttrList, cmd *cli.Command, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if cmd.Bool("titles") {
		fmt.Fprintln(tw, strings.Join(al.Titles(), "\t"))
	}
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(project(row, al), "\t"))
	}
	_ = tw.Flush()
}

func spitTable(rows []gjson.Result, al attrs.AttrList, cmd *cli.Command, w io.Writer) {
	var body [][]string
	for _, row := range rows {
		body = append(body, project(row, al))
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		Rows(body...)

	if cmd.Bool("titles") {
		t = t.Headers(al.Titles()...).BorderHeader(false)
	}

	if colorWanted(cmd, w) {
		headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
		t = t.StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle()
		})
	}

	fmt.Fprintln(w, t)
}

// colorWanted honors --color but never colors a non-terminal sink.
func colorWanted(cmd *cli.Command, w io.Writer) bool {
	if !cmd.Bool("color") {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
