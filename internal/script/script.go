// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package script

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/cachefsgo/internal/fsys"
)

// Verb is one of the supported workload operations.
type Verb string

const (
	VerbCreate Verb = "create"
	VerbRead   Verb = "read"
	VerbWrite  Verb = "write"
	VerbDelete Verb = "delete"
	VerbList   Verb = "list"
)

// Op is one parsed workload line.
type Op struct {
	Verb    Verb
	Name    string
	Content string
}

// Summary reports how a workload went. Operation failures (missing file,
// duplicate create) are results, not errors; they land in Failures.
type Summary struct {
	Ops      int
	Failures int
}

// Parse reads a workload: one operation per line,
//
//	create <name> [content]
//	read <name>
//	write <name> [content]
//	delete <name>
//	list
//
// Blank lines and lines starting with # are skipped. Content runs to end of
// line, spaces included.
func Parse(r io.Reader) ([]Op, error) {
	var ops []Op

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, " ", 3)
		op := Op{Verb: Verb(strings.ToLower(parts[0]))}

		switch op.Verb {
		case VerbList:
			if len(parts) > 1 {
				return nil, fmt.Errorf("line %d: list takes no arguments", lineno)
			}
		case VerbCreate, VerbWrite:
			if len(parts) < 2 {
				return nil, fmt.Errorf("line %d: %s needs a file name", lineno, op.Verb)
			}
			op.Name = parts[1]
			if len(parts) == 3 {
				op.Content = parts[2]
			}
		case VerbRead, VerbDelete:
			if len(parts) != 2 {
				return nil, fmt.Errorf("line %d: %s needs exactly a file name", lineno, op.Verb)
			}
			op.Name = parts[1]
		default:
			return nil, fmt.Errorf("line %d: unknown operation %q", lineno, parts[0])
		}

		ops = append(ops, op)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	return ops, nil
}

// Execute runs the workload against fs, narrating each attempt and result
// to w. The narration mirrors the library's demo voice: one attempt line per
// operation, success or failure spelled out, reads annotated with their
// source.
func Execute(fs *fsys.FileSystem, ops []Op, w io.Writer) Summary {
	var sum Summary

	for _, op := range ops {
		sum.Ops++
		switch op.Verb {
		case VerbCreate:
			fmt.Fprintf(w, "Attempting to CREATE %q...", op.Name)
			if err := fs.Create(op.Name, op.Content); err != nil {
				fmt.Fprintf(w, " -> Failure (%v).\n", err)
				sum.Failures++
				continue
			}
			fmt.Fprintf(w, " -> Success.\n")

		case VerbRead:
			fmt.Fprintf(w, "Attempting to READ %q...", op.Name)
			content, src, err := fs.Read(op.Name)
			if err != nil {
				fmt.Fprintf(w, " -> Failure (%v).\n", err)
				sum.Failures++
				continue
			}
			fmt.Fprintf(w, " -> Success (from %s): %s\n", src, content)

		case VerbWrite:
			fmt.Fprintf(w, "Attempting to WRITE %q...", op.Name)
			if err := fs.Write(op.Name, op.Content); err != nil {
				fmt.Fprintf(w, " -> Failure (%v).\n", err)
				sum.Failures++
				continue
			}
			fmt.Fprintf(w, " -> Success.\n")

		case VerbDelete:
			fmt.Fprintf(w, "Attempting to DELETE %q...", op.Name)
			if err := fs.Delete(op.Name); err != nil {
				fmt.Fprintf(w, " -> Failure (%v).\n", err)
				sum.Failures++
				continue
			}
			fmt.Fprintf(w, " -> Success.\n")

		case VerbList:
			rows := fs.List()
			fmt.Fprintf(w, "Files (%d):\n", len(rows))
			for _, e := range rows {
				fmt.Fprintf(w, "- %s\n", e.Name)
			}
		}
	}

	log.Debugf("workload: %d ops, %d failures", sum.Ops, sum.Failures)
	return sum
}

// Demo is the canonical built-in scenario: allocate three files, warm the
// caches with reads, write through an update, delete, and re-read the
// deleted file to show the miss.
const Demo = `# cachefs demo workload
create file1.txt content1
create file2.txt content2
create file3.txt content3
list
read file1.txt
read file2.txt
write file1.txt new_content1
read file1.txt
delete file2.txt
read file2.txt
list
`
