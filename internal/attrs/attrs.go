// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package attrs

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
)

// Attr represents each of the keys to be included in the output. These are
// identified by the row's JSON attribute key, thus the name.
type Attr struct {
	// The JSON key to extract from the result row.
	Key string
	// The key to use in the output. This is also the column title when
	// output=text/table.
	OutputKey string
	// Transformation spec to apply to the output value.
	TransformSpec string
}

// Transform applies the attr's transform spec to a raw value and renders it
// as a string. Supported transforms: h (humanize a byte count), t (humanize
// an RFC3339 timestamp as relative time), u/l (case), a trailing integer
// (truncate, negative for middle elision).
func (a *Attr) Transform(value interface{}) string {
	result := fmt.Sprint(value)

	if strings.ContainsAny(a.TransformSpec, "hH") {
		if n, err := strconv.ParseFloat(result, 64); err == nil {
			result = humanize.Bytes(uint64(n))
		}
	}

	if strings.ContainsAny(a.TransformSpec, "tT") {
		if ts, err := time.Parse(time.RFC3339, result); err == nil {
			result = humanize.Time(ts)
		} else {
			log.Debugf("failed to parse time: %s", result)
		}
	}

	// The case transform that appears last wins. This lets a per-attr spec
	// override a global one that was prepended to it.
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")
	if lastL > lastU {
		result = strings.ToLower(result)
	} else if lastU > lastL {
		result = strings.ToUpper(result)
	}

	// Is it a length-based transformation?
	if a.TransformSpec != "" {
		re := regexp.MustCompile(`-?\d+`)
		match := re.FindAllString(a.TransformSpec, -1)
		if len(match) != 0 {
			// Take the last (overriding) match.
			l, _ := strconv.Atoi(match[len(match)-1])
			abs := int(math.Abs(float64(l)))
			if len(result) > abs {
				if l < 0 {
					lr := abs/2 - 1
					left := result[0:lr]
					right := result[len(result)-lr:]
					result = left + ".." + right
				} else {
					result = result[:l]
				}
			}
		}
	}

	return result
}

type AttrList []Attr

// String returns a representation matching the format of the original
// --attrs flag.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		result = append(result, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}

// Set parses a comma-separated attrs spec into the list. Each entry is
// key[:outputkey[:transform]]; a bare key outputs under its own name. A
// repeated key replaces the earlier entry rather than duplicating a column.
func (a *AttrList) Set(spec string) error {
	for _, item := range strings.Split(spec, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		parts := strings.SplitN(item, ":", 3)
		attr := Attr{Key: parts[0], OutputKey: parts[0]}
		if len(parts) > 1 && parts[1] != "" {
			attr.OutputKey = parts[1]
		}
		if len(parts) > 2 {
			attr.TransformSpec = parts[2]
		}

		replaced := false
		for i, existing := range *a {
			if existing.Key == attr.Key {
				(*a)[i] = attr
				replaced = true
				break
			}
		}
		if !replaced {
			*a = append(*a, attr)
		}
	}

	return nil
}

// Keys returns the JSON keys in output order.
func (a *AttrList) Keys() []string {
	out := make([]string, 0, len(*a))
	for _, attr := range *a {
		out = append(out, attr.Key)
	}
	return out
}

// Titles returns the output keys, upper-cased, in output order.
func (a *AttrList) Titles() []string {
	out := make([]string, 0, len(*a))
	for _, attr := range *a {
		out = append(out, strings.ToUpper(attr.OutputKey))
	}
	return out
}
