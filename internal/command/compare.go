// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/staranto/cachefsgo/internal/cache"
	"github.com/staranto/cachefsgo/internal/meta"
	"github.com/staranto/cachefsgo/internal/script"
)

// CompareCommandAction runs one workload through both eviction policies and
// shows where their surviving cache contents diverge. The two caches see the
// identical access sequence; any difference is purely the policies'
// eviction choices.
func CompareCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	ops, err := LoadWorkload(cmd)
	if err != nil {
		return err
	}

	fs, err := NewFileSystem(cmd)
	if err != nil {
		return err
	}

	sum := script.Execute(fs, ops, io.Discard)
	stats := fs.Stats()

	lru := contents[string, string](fs.LRU())
	lfu := contents[string, string](fs.LFU())

	fmt.Printf("Workload: %d ops (%d failed), %d hits, %d misses\n",
		sum.Ops, sum.Failures, stats.Hits, stats.Misses)
	fmt.Printf("LRU survivors (MRU first): %v\n", fs.LRU().Keys())
	fmt.Printf("LFU survivors (coldest first): %v\n", fs.LFU().Keys())

	left, err := json.Marshal(lru)
	if err != nil {
		return fmt.Errorf("failed to marshal lru contents: %w", err)
	}
	right, err := json.Marshal(lfu)
	if err != nil {
		return fmt.Errorf("failed to marshal lfu contents: %w", err)
	}

	diff, err := gojsondiff.New().Compare(left, right)
	if err != nil {
		return fmt.Errorf("failed to diff cache contents: %w", err)
	}

	if !diff.Modified() {
		fmt.Println("Policies agree: both caches hold the same entries.")
		return nil
	}

	var leftObj map[string]interface{}
	if err := json.Unmarshal(left, &leftObj); err != nil {
		return fmt.Errorf("failed to unmarshal lru contents: %w", err)
	}

	rendered, err := formatter.NewAsciiFormatter(leftObj, formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       cmd.Bool("color"),
	}).Format(diff)
	if err != nil {
		return fmt.Errorf("failed to format diff: %w", err)
	}

	fmt.Println("Policies diverge (LRU -> LFU):")
	fmt.Print(rendered)
	return nil
}

// contents snapshots a cache into a plain key->value map without perturbing
// its ordering state.
func contents[K comparable, V any](c cache.Policy[K, V]) map[K]V {
	out := make(map[K]V, c.Len())
	for _, k := range c.Keys() {
		if v, ok := c.Peek(k); ok {
			out[k] = v
		}
	}
	return out
}

// CompareCommandBuilder constructs the cli.Command for "compare", wiring
// metadata, flags, and action/validator handlers.
func CompareCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Usage:     "diff LRU vs LFU cache contents after a workload",
		UsageText: `cachefs compare [script|-] [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			NewCacheSizeFlag("compare"),
		}, NewGlobalFlags("compare")...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := CompareCommandValidator(ctx, c); err != nil {
				return err
			}
			return CompareCommandAction(ctx, c)
		},
	}
}

// CompareCommandValidator performs validation for "compare" and delegates to
// GlobalFlagsValidator.
func CompareCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
