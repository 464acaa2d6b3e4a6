// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndRead(t *testing.T) {
	d := NewDirectory("root")

	require.NoError(t, d.Create("file1.txt", "content1"))

	got, err := d.Read("file1.txt")
	require.NoError(t, err)
	assert.Equal(t, "content1", got)

	assert.True(t, d.Exists("file1.txt"))
	assert.Equal(t, 1, d.Len())
}

func TestCreateDuplicate(t *testing.T) {
	d := NewDirectory("root")

	require.NoError(t, d.Create("file1.txt", "content1"))

	err := d.Create("file1.txt", "other")
	assert.ErrorIs(t, err, ErrExists)

	// The original content survives a failed create.
	got, err := d.Read("file1.txt")
	require.NoError(t, err)
	assert.Equal(t, "content1", got)
}

func TestReadMissing(t *testing.T) {
	d := NewDirectory("root")

	_, err := d.Read("nope.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWriteIsNotCreate(t *testing.T) {
	d := NewDirectory("root")

	err := d.Write("file1.txt", "content")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, d.Exists("file1.txt"), "a failed write must not create the file")

	require.NoError(t, d.Create("file1.txt", "old"))
	require.NoError(t, d.Write("file1.txt", "new"))

	got, err := d.Read("file1.txt")
	require.NoError(t, err)
	assert.Equal(t, "new", got)
}

func TestDelete(t *testing.T) {
	d := NewDirectory("root")

	require.NoError(t, d.Create("file1.txt", "content1"))
	require.NoError(t, d.Delete("file1.txt"))
	assert.False(t, d.Exists("file1.txt"))

	assert.ErrorIs(t, d.Delete("file1.txt"), ErrNotFound)
}

func TestListSortedWithMetadata(t *testing.T) {
	d := NewDirectory("root")

	// Deterministic clock so ModTime is assertable.
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	d.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	require.NoError(t, d.Create("b.txt", "22"))
	require.NoError(t, d.Create("a.txt", "1"))
	require.NoError(t, d.Create("c.txt", "333"))
	require.NoError(t, d.Write("a.txt", "1111"))

	got := d.List()
	require.Len(t, got, 3)

	assert.Equal(t, "a.txt", got[0].Name)
	assert.Equal(t, 4, got[0].Size)
	assert.Equal(t, base.Add(4*time.Minute), got[0].ModTime, "write must refresh modtime")

	assert.Equal(t, "b.txt", got[1].Name)
	assert.Equal(t, 2, got[1].Size)

	assert.Equal(t, "c.txt", got[2].Name)
	assert.Equal(t, 3, got[2].Size)
}
