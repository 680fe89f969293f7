// Package packing partitions a total required quantity into discrete bags
// bounded by a maximum capacity per bag, and renders the grouped human-readable
// descriptions used by ingredient packaging reports and HORECA labels.
package packing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Pack splits total into bag weights using a greedy fill: every bag is filled
// to capacity except possibly the last. A non-positive total yields no bags.
//
// Postconditions for total > 0 and capacity > 0: the weights sum to total,
// every element but the last equals capacity, and the last lies in
// (0, capacity].
func Pack(total, capacity decimal.Decimal) []decimal.Decimal {
	if total.LessThanOrEqual(decimal.Zero) {
		return []decimal.Decimal{}
	}
	if capacity.LessThanOrEqual(decimal.Zero) {
		return []decimal.Decimal{total}
	}

	bags := make([]decimal.Decimal, 0, total.Div(capacity).Ceil().IntPart())
	remaining := total
	for remaining.GreaterThan(decimal.Zero) {
		weight := capacity
		if remaining.LessThan(capacity) {
			weight = remaining
		}
		bags = append(bags, weight)
		remaining = remaining.Sub(weight)
	}
	return bags
}

// Describe groups equal weights, sorts groups by weight descending, and
// renders one line per group: "<count> BAGS OF <weight> <unit>" (singular
// "BAG" when the group has one bag). Flatten several branches' weight lists
// into one slice first to get the consolidated cross-branch description.
func Describe(weights []decimal.Decimal, unit string) []string {
	if len(weights) == 0 {
		return []string{}
	}

	counts := make(map[string]int)
	values := make(map[string]decimal.Decimal)
	for _, w := range weights {
		key := w.String()
		counts[key]++
		values[key] = w
	}

	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return values[keys[i]].GreaterThan(values[keys[j]])
	})

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		noun := "BAGS"
		if counts[key] == 1 {
			noun = "BAG"
		}
		lines = append(lines, fmt.Sprintf("%d %s OF %s %s", counts[key], noun, key, strings.ToUpper(unit)))
	}
	return lines
}
