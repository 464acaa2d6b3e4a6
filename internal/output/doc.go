// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package output renders listing rows per the common flags: --filter and
// --sort slice the dataset, --attrs picks and transforms columns, --output
// selects text, table, json, yaml or raw rendering.
package output
