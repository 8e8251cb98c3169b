// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"

	"github.com/spf13/pflag"
)

// minPrefix is the shortest input completed by prefix, so "arch"
// finds "archive" but "a" finds nothing.
const minPrefix = 3

// candidate is one accepted spelling and the name it resolves to.
type candidate struct {
	spelling  string
	canonical string
}

// suggestCommand returns the canonical name of the subcommand typed
// most likely meant, considering aliases, or "".
func suggestCommand(typed string, commands []*Command) string {
	var candidates []candidate
	for _, command := range commands {
		candidates = append(candidates, candidate{command.Name, command.Name})
		for _, alias := range command.Aliases {
			candidates = append(candidates, candidate{alias, command.Name})
		}
	}
	return suggest(typed, candidates)
}

// suggestFlag finds the first unknown long flag in args and returns the
// defined flag it most likely meant, as "--name", or "". Shorthands are
// never suggested.
func suggestFlag(args []string, flagSet *pflag.FlagSet) string {
	var candidates []candidate
	flagSet.VisitAll(func(flag *pflag.Flag) {
		candidates = append(candidates, candidate{flag.Name, flag.Name})
	})

	for _, arg := range args {
		if arg == "--" {
			return ""
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			continue
		}
		name, _, _ := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if flagSet.Lookup(name) != nil || (len(name) == 1 && flagSet.ShorthandLookup(name) != nil) {
			continue
		}
		if suggestion := suggest(name, candidates); suggestion != "" {
			return "--" + suggestion
		}
		return ""
	}
	return ""
}

// suggest picks the candidate typed most likely meant. A typed prefix
// of at least minPrefix bytes that leads to exactly one canonical name
// wins; otherwise the nearest spelling within maxEdits does.
func suggest(typed string, candidates []candidate) string {
	if len(typed) >= minPrefix {
		match, ambiguous := "", false
		for _, c := range candidates {
			if !strings.HasPrefix(c.spelling, typed) {
				continue
			}
			if match != "" && match != c.canonical {
				ambiguous = true
			}
			match = c.canonical
		}
		if match != "" && !ambiguous {
			return match
		}
	}

	best, bestDistance := "", maxEdits(typed)+1
	for _, c := range candidates {
		if distance := editDistance(typed, c.spelling); distance < bestDistance {
			best, bestDistance = c.canonical, distance
		}
	}
	return best
}

// maxEdits scales the tolerated distance with the input: one edit for
// short words, at most three.
func maxEdits(typed string) int {
	return min(3, max(1, len(typed)/3))
}

// editDistance is the optimal string alignment distance between a and
// b: insertions, deletions, substitutions and adjacent transpositions
// each cost one.
func editDistance(a, b string) int {
	rows, columns := len(a)+1, len(b)+1
	// Three rolling rows: two back, previous, current.
	twoBack := make([]int, columns)
	previous := make([]int, columns)
	current := make([]int, columns)
	for j := range previous {
		previous[j] = j
	}
	for i := 1; i < rows; i++ {
		current[0] = i
		for j := 1; j < columns; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			current[j] = min(previous[j]+1, current[j-1]+1, previous[j-1]+cost)
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				current[j] = min(current[j], twoBack[j-2]+1)
			}
		}
		twoBack, previous, current = previous, current, twoBack
	}
	return previous[columns-1]
}
