// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package store holds the authoritative in-memory file content: a single
// flat directory of named files. Nested directories, permissions and durable
// persistence are out of scope.
package store
