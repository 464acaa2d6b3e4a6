// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/staranto/cachefsgo/internal/cache"
	"github.com/staranto/cachefsgo/internal/meta"
	"github.com/staranto/cachefsgo/internal/script"
)

func TestBuildAttrs(t *testing.T) {
	cmd := &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "attrs"},
		},
		Action: func(_ context.Context, c *cli.Command) error {
			al := BuildAttrs(c, "name", "size")
			assert.Equal(t, []string{"name", "size", "freq"}, al.Keys())
			return nil
		},
	}
	require.NoError(t, cmd.Run(context.Background(), []string{"test", "--attrs", "freq"}))
}

func TestGetMeta(t *testing.T) {
	assert.Equal(t, meta.Meta{}, GetMeta(nil))
	assert.Equal(t, meta.Meta{}, GetMeta(&cli.Command{}))

	m := meta.Meta{StartingDir: "/tmp"}
	cmd := &cli.Command{Metadata: map[string]any{"meta": m}}
	assert.Equal(t, m, GetMeta(cmd))

	// Wrong type degrades to the zero value instead of panicking.
	cmd = &cli.Command{Metadata: map[string]any{"meta": 42}}
	assert.Equal(t, meta.Meta{}, GetMeta(cmd))
}

func TestOutputValidator(t *testing.T) {
	for _, valid := range []string{"text", "table", "json", "yaml", "raw"} {
		assert.NoError(t, OutputValidator(valid), valid)
	}
	assert.Error(t, OutputValidator("xml"))
}

func TestPositiveIntValidator(t *testing.T) {
	assert.NoError(t, PositiveIntValidator(1))
	assert.Error(t, PositiveIntValidator(0))
	assert.Error(t, PositiveIntValidator(-5))
}

func TestLoadWorkloadFromFile(t *testing.T) {
	var got []script.Op
	cmd := &cli.Command{
		Name: "test",
		Action: func(_ context.Context, c *cli.Command) error {
			ops, err := LoadWorkload(c)
			require.NoError(t, err)
			got = ops
			return nil
		},
	}
	path := filepath.Join("testdata", "workload.txt")
	require.NoError(t, cmd.Run(context.Background(), []string{"test", path}))

	require.Len(t, got, 4)
	assert.Equal(t, script.Op{Verb: script.VerbCreate, Name: "a.txt", Content: "alpha"}, got[0])
	assert.Equal(t, script.Op{Verb: script.VerbList}, got[3])
}

func TestLoadWorkloadMissingFile(t *testing.T) {
	cmd := &cli.Command{
		Name: "test",
		Action: func(_ context.Context, c *cli.Command) error {
			_, err := LoadWorkload(c)
			assert.Error(t, err)
			return nil
		},
	}
	require.NoError(t, cmd.Run(context.Background(), []string{"test", "no-such-script.txt"}))
}

func TestContentsSnapshot(t *testing.T) {
	lru, err := cache.NewLRU[string, string](3)
	require.NoError(t, err)

	lru.Put("a", "1")
	lru.Put("b", "2")

	got := contents[string, string](lru)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, got)

	// Snapshotting must not perturb recency: a is still the eviction victim.
	lru.Put("c", "3")
	lru.Put("d", "4")
	assert.False(t, lru.Contains("a"))
}
