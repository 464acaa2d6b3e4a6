// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package fsys composes the file store with the two cache policies into one
// read-through/write-through facade. The caches run independently over the
// same keyspace and are never reconciled; the compare command exists to show
// where their eviction choices diverge.
package fsys
