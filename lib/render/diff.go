// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Op is the kind of a diff line.
type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

// defaultContext is the number of unchanged lines shown around each
// change.
const defaultContext = 3

// Line is one line of a diff.
type Line struct {
	Op   Op
	Text string
	// BeforeLine and AfterLine are 1-based positions in the inputs,
	// zero when the line does not appear on that side.
	BeforeLine, AfterLine int
}

// DiffLines computes a minimal line diff. Each distinct line is
// reduced to a single rune and the rune strings are diffed with Myers'
// algorithm, so memory grows with the input plus the edit distance.
// Deletions are emitted before insertions at the same position.
func DiffLines(before, after []string) []Line {
	differ := diffmatchpatch.New()
	differ.DiffTimeout = 0

	beforeRunes, afterRunes, lineArray := differ.DiffLinesToRunes(joinLines(before), joinLines(after))
	diffs := differ.DiffCharsToLines(differ.DiffMainRunes(beforeRunes, afterRunes, false), lineArray)

	lines := make([]Line, 0, max(len(before), len(after)))
	beforeLine, afterLine := 0, 0
	for _, diff := range diffs {
		for _, text := range diffTextLines(diff.Text) {
			switch diff.Type {
			case diffmatchpatch.DiffEqual:
				beforeLine++
				afterLine++
				lines = append(lines, Line{Op: Equal, Text: text, BeforeLine: beforeLine, AfterLine: afterLine})
			case diffmatchpatch.DiffDelete:
				beforeLine++
				lines = append(lines, Line{Op: Delete, Text: text, BeforeLine: beforeLine})
			case diffmatchpatch.DiffInsert:
				afterLine++
				lines = append(lines, Line{Op: Insert, Text: text, AfterLine: afterLine})
			}
		}
	}
	return lines
}

// diffTextLines splits newline-terminated diff text back into lines.
// Empty lines survive, unlike splitLines.
func diffTextLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// joinLines terminates every line with a newline so the last line
// compares equal to the same line elsewhere.
func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// Hunk is a run of changed lines with surrounding context.
type Hunk struct {
	BeforeStart, BeforeCount int
	AfterStart, AfterCount   int
	Lines                    []Line
}

// Header returns the unified-diff hunk marker.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.BeforeStart, h.BeforeCount, h.AfterStart, h.AfterCount)
}

// Hunks groups changed lines with up to context unchanged lines on
// each side. Changes separated by at most 2*context unchanged lines
// share a hunk.
func Hunks(lines []Line, context int) []Hunk {
	var hunks []Hunk
	index := 0
	for index < len(lines) {
		for index < len(lines) && lines[index].Op == Equal {
			index++
		}
		if index == len(lines) {
			break
		}
		start := max(index-context, 0)
		end := index
		for end < len(lines) {
			if lines[end].Op != Equal {
				end++
				continue
			}
			run := end
			for run < len(lines) && lines[run].Op == Equal {
				run++
			}
			if run == len(lines) || run-end > 2*context {
				end = min(end+context, len(lines))
				break
			}
			end = run
		}
		hunks = append(hunks, newHunk(lines, start, end))
		index = end
	}
	return hunks
}

func newHunk(lines []Line, start, end int) Hunk {
	hunk := Hunk{Lines: lines[start:end]}
	for _, line := range hunk.Lines {
		if line.Op != Insert {
			hunk.BeforeCount++
			if hunk.BeforeStart == 0 {
				hunk.BeforeStart = line.BeforeLine
			}
		}
		if line.Op != Delete {
			hunk.AfterCount++
			if hunk.AfterStart == 0 {
				hunk.AfterStart = line.AfterLine
			}
		}
	}
	// An empty side starts after the line preceding the hunk.
	if hunk.BeforeStart == 0 {
		hunk.BeforeStart = precedingLine(lines, start, func(line Line) int { return line.BeforeLine })
	}
	if hunk.AfterStart == 0 {
		hunk.AfterStart = precedingLine(lines, start, func(line Line) int { return line.AfterLine })
	}
	return hunk
}

func precedingLine(lines []Line, start int, position func(Line) int) int {
	for i := start - 1; i >= 0; i-- {
		if value := position(lines[i]); value != 0 {
			return value
		}
	}
	return 0
}
