// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package version carries the build version, overridden at link time via
// -ldflags "-X ...version.Version=...".
package version

var Version = "dev"
