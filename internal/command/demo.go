// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/cachefsgo/internal/meta"
	"github.com/staranto/cachefsgo/internal/script"
)

// DemoCommandAction runs the canonical built-in scenario: allocate files,
// warm the caches, write through an update, delete, and show the misses.
func DemoCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	ops, err := script.Parse(strings.NewReader(script.Demo))
	if err != nil {
		return fmt.Errorf("failed to parse built-in demo: %w", err)
	}

	fs, err := NewFileSystem(cmd)
	if err != nil {
		return err
	}

	fmt.Println("In-Memory File System with Caching Demo")
	fmt.Println(strings.Repeat("=", 40))

	sum := script.Execute(fs, ops, os.Stdout)
	stats := fs.Stats()

	fmt.Println(strings.Repeat("=", 40))
	fmt.Printf("Operations: %d (%d failed)\n", sum.Ops, sum.Failures)
	fmt.Printf("Cache hits: %d, misses: %d\n", stats.Hits, stats.Misses)
	fmt.Printf("LRU holds %v\n", fs.LRU().Keys())
	fmt.Printf("LFU holds %v\n", fs.LFU().Keys())

	return nil
}

// DemoCommandBuilder constructs the cli.Command for "demo".
func DemoCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "demo",
		Usage:     "run the built-in demo workload",
		UsageText: `cachefs demo [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewCacheSizeFlag("demo"),
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return DemoCommandAction(ctx, c)
		},
	}
}
