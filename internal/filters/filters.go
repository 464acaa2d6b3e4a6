// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
)

// filterRegex is the pattern used to parse filter expressions into key,
// operator, and target components. It matches: key + operator + target,
// where operator is one of = ^ ~ < or >, optionally prefixed with '!'.
// This allows forms like '=', '!=', '^', '!^', etc.
var filterRegex = regexp.MustCompile(`^(.*?)(!?[=^~<>])(.*)$`)

// Filter represents a single parsed --filter expression including the key,
// operand, optional negation and target value.
type Filter struct {
	Key     string
	Negate  bool
	Operand string
	Target  string
}

// BuildFilters parses a filter specification string into a slice of Filter.
// Invalid specs (unsupported operand or malformed expression) are skipped.
func BuildFilters(spec string) []Filter {
	// Don't prealloc because we don't know what len will be and performance is
	// not critical.
	//nolint:prealloc
	var filters []Filter

	// If there are no filters specified, go home early.
	if spec == "" {
		return filters
	}

	// Default delimiter is ",", allow an override.
	delim := ","
	if d, ok := os.LookupEnv("CACHEFS_FILTER_DELIM"); ok {
		delim = d
	}

	// Split the spec and iterate over each filter spec entry.
	filterSpecs := strings.Split(spec, delim)
	for _, filterSpec := range filterSpecs {
		parts := filterRegex.FindStringSubmatch(filterSpec)

		// If a supported operand was not found, log an error and throw it away.
		if parts == nil {
			log.Error("invalid filter: " + filterSpec)
			continue
		}

		// parts[2] is the operand. It may have a leading negation. If so, trim it
		// and just use the remainder as the working operand.
		negate := strings.HasPrefix(parts[2], "!")
		if negate {
			parts[2] = strings.TrimPrefix(parts[2], "!")
		}

		// We've got a valid filter, append it to the result set.
		filters = append(filters, Filter{
			Key:     parts[1],
			Negate:  negate,
			Operand: parts[2],
			Target:  parts[3],
		})
	}

	return filters
}

// Match evaluates one filter against a row. A key missing from the row never
// matches (and so never passes a negated filter either way; absence is
// treated as false before negation).
func (f Filter) Match(row gjson.Result) bool {
	value := row.Get(f.Key)
	if !value.Exists() {
		return false
	}

	var matched bool
	switch f.Operand {
	case "=":
		matched = value.String() == f.Target
	case "^":
		matched = strings.HasPrefix(value.String(), f.Target)
	case "~":
		re, err := regexp.Compile(f.Target)
		if err != nil {
			log.Error("invalid filter regex: " + f.Target)
			return false
		}
		matched = re.MatchString(value.String())
	case "<", ">":
		matched = compareNumeric(f.Operand, value, f.Target)
	default:
		return false
	}

	if f.Negate {
		matched = !matched
	}
	return matched
}

// MatchAll reports whether the row passes every filter.
func MatchAll(filters []Filter, row gjson.Result) bool {
	for _, f := range filters {
		if !f.Match(row) {
			return false
		}
	}
	return true
}

func compareNumeric(op string, value gjson.Result, target string) bool {
	t, err := strconv.ParseFloat(target, 64)
	if err != nil {
		log.Error("non-numeric filter target: " + target)
		return false
	}
	if op == "<" {
		return value.Float() < t
	}
	return value.Float() > t
}
