package generator

import (
	"fmt"
	"strings"
)

// Pair is one key/value line of the flat build-wrapper listing.
type Pair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// FillSlots truncates names to the slot count and pads short lists
// with unusedN placeholders (N = count+1..n), so the build wrapper can
// always assume exactly n slots. Placeholders carry no target and no
// class; they exist only as filler names.
func FillSlots(names []string, n int) []string {
	if len(names) > n {
		names = names[:n]
	}
	out := make([]string, 0, n)
	out = append(out, names...)
	for i := len(out) + 1; i <= n; i++ {
		out = append(out, fmt.Sprintf("unused%d", i))
	}
	return out
}

// GeneratePairs maps filled slots to numbered keys: LED1..LEDn for key
// prefix "LED".
func GeneratePairs(keyPrefix string, slots []string) []Pair {
	pairs := make([]Pair, 0, len(slots))
	for i, name := range slots {
		pairs = append(pairs, Pair{
			Key:   fmt.Sprintf("%s%d", keyPrefix, i+1),
			Value: name,
		})
	}
	return pairs
}

// RenderPairs serializes pairs as set(KEY value) lines for the build
// wrapper.
func RenderPairs(pairs []Pair) string {
	var b strings.Builder
	for _, p := range pairs {
		fmt.Fprintf(&b, "set(%s %s)\n", p.Key, p.Value)
	}
	return b.String()
}
