// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/cachefsgo/internal/meta"
	"github.com/staranto/cachefsgo/internal/script"
)

// RunCommandAction is the action handler for the "run" subcommand. It
// executes a workload script against a fresh file system, narrating each
// operation, and optionally reports the cache hit/miss stats.
func RunCommandAction(ctx context.Context, cmd *cli.Command) error {
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

	sum := script.Execute(fs, ops, os.Stdout)
	log.Debugf("summary: %+v", sum)

	if cmd.Bool("stats") {
		stats := fs.Stats()
		fmt.Printf("Operations: %d (%d failed)\n", sum.Ops, sum.Failures)
		fmt.Printf("Cache hits: %d, misses: %d\n", stats.Hits, stats.Misses)
	}

	// Operation failures are results, not process errors. The exit code
	// stays zero unless the script itself could not be run.
	return nil
}

// RunCommandBuilder constructs the cli.Command for "run", wiring metadata,
// flags, and action/validator handlers.
func RunCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "run a workload script",
		UsageText: `cachefs run [script|-] [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			NewCacheSizeFlag("run"),
			&cli.BoolFlag{
				Name:        "stats",
				Usage:       "print cache hit/miss stats after the workload",
				HideDefault: true,
			},
		}, NewGlobalFlags("run")...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := RunCommandValidator(ctx, c); err != nil {
				return err
			}
			return RunCommandAction(ctx, c)
		},
	}
}

// RunCommandValidator performs validation for "run" and delegates to
// GlobalFlagsValidator.
func RunCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
