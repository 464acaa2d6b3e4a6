// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"io"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/cachefsgo/internal/meta"
	"github.com/staranto/cachefsgo/internal/script"
)

// LsCommandAction is the action handler for the "ls" subcommand. It runs a
// workload script silently, then emits the resulting listing (store content
// annotated with per-policy cache residency) per the common output flags.
func LsCommandAction(ctx context.Context, cmd *cli.Command) error {
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

	// The workload only builds state here; the listing is the output.
	sum := script.Execute(fs, ops, io.Discard)
	log.Debugf("summary: %+v", sum)

	attrs := BuildAttrs(cmd, "name", "size", "in_lru", "in_lfu", "freq")
	log.Debugf("attrs: %v", attrs)

	return EmitSlice(fs.List(), attrs, cmd)
}

// LsCommandBuilder constructs the cli.Command for "ls", wiring metadata,
// flags, and action/validator handlers.
func LsCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Usage:     "list store content and cache residency after a workload",
		UsageText: `cachefs ls [script|-] [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			NewCacheSizeFlag("ls"),
		}, NewGlobalFlags("ls")...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := LsCommandValidator(ctx, c); err != nil {
				return err
			}
			return LsCommandAction(ctx, c)
		},
	}
}

// LsCommandValidator performs validation for "ls" and delegates to
// GlobalFlagsValidator.
func LsCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
