// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package command defines the CLI command set for cachefs. It wires flags,
// validators and actions for the run, demo, ls and compare subcommands.
package command
