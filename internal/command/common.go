// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/staranto/cachefsgo/internal/attrs"
	"github.com/staranto/cachefsgo/internal/fsys"
	"github.com/staranto/cachefsgo/internal/meta"
	"github.com/staranto/cachefsgo/internal/output"
	"github.com/staranto/cachefsgo/internal/script"
	"github.com/staranto/cachefsgo/internal/store"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList) {
	//nolint:errcheck
	{
		for _, d := range defaults {
			al.Set(d)
		}
		if extras := cmd.String("attrs"); extras != "" {
			al.Set(extras)
		}
	}
	return
}

// EmitSlice marshals results to JSON and passes them to the common output
// routine.
func EmitSlice(results any, al attrs.AttrList, cmd *cli.Command) error {
	raw, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	output.SliceDiceSpit(raw, al, cmd, os.Stdout)
	return nil
}

// NewFileSystem builds a fresh store and a FileSystem over it, both caches
// sized per --cache-size.
func NewFileSystem(cmd *cli.Command) (*fsys.FileSystem, error) {
	return fsys.New(store.NewDirectory("root"), int(cmd.Int("cache-size")))
}

// LoadWorkload resolves the workload for a command: the first positional
// argument names a script file, "-" (or no argument) means stdin.
func LoadWorkload(cmd *cli.Command) ([]script.Op, error) {
	path := cmd.Args().First()
	if path == "" || path == "-" {
		return script.Parse(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script %s: %w", path, err)
	}
	defer f.Close()

	ops, err := script.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ops, nil
}
