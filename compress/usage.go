package compress

import (
	"strings"

	"cssc/css"
)

// Usage restricts output to a known markup vocabulary: rules whose every
// selector provably targets tags, classes or ids outside the given lists
// are dropped. An empty list means "no restriction" for that kind.
// Selectors too complex to decompose confidently are always kept.
type Usage struct {
	Tags    []string
	Classes []string
	IDs     []string
}

type usageIndex struct {
	tags    map[string]bool
	classes map[string]bool
	ids     map[string]bool
}

func newUsageIndex(u *Usage) *usageIndex {
	idx := &usageIndex{}
	if len(u.Tags) > 0 {
		idx.tags = make(map[string]bool, len(u.Tags))
		for _, t := range u.Tags {
			idx.tags[strings.ToLower(t)] = true
		}
	}
	if len(u.Classes) > 0 {
		idx.classes = make(map[string]bool, len(u.Classes))
		for _, cl := range u.Classes {
			idx.classes[cl] = true
		}
	}
	if len(u.IDs) > 0 {
		idx.ids = make(map[string]bool, len(u.IDs))
		for _, id := range u.IDs {
			idx.ids[id] = true
		}
	}
	return idx
}

// filterUsage removes provably unused rules at the top level and inside
// conditional at-rules.
func (c *context) filterUsage(sheet *css.StyleSheet) {
	if c.set.usage == nil {
		return
	}
	idx := newUsageIndex(c.set.usage)
	c.filterUsageList(sheet.Children, idx)
}

func (c *context) filterUsageList(list *css.List, idx *usageIndex) {
	list.Each(func(it *css.Item) {
		switch n := it.Value.(type) {
		case *css.Rule:
			if ruleUnused(n, idx) {
				list.Remove(it)
				c.n.rulesRemoved++
			}
		case *css.AtRule:
			if n.Block != nil && containsRules(n.Block) {
				c.filterUsageList(n.Block.Children, idx)
				if n.Block.Children.Empty() && conditionalAtRule(n.Name) {
					list.Remove(it)
					c.n.rulesRemoved++
				}
			}
		}
	})
}

// ruleUnused is true only when every selector of the rule is provably
// outside the usage vocabulary.
func ruleUnused(r *css.Rule, idx *usageIndex) bool {
	for _, sel := range r.Selectors.Selectors {
		unused, provable := selectorUnused(sel.Raw, idx)
		if !provable || !unused {
			return false
		}
	}
	return len(r.Selectors.Selectors) > 0
}

// selectorUnused decomposes a selector into compounds separated by
// combinators and checks each simple part against the vocabulary. A
// selector is unused when any of its compounds names a tag, class or id
// missing from a non-empty corresponding list. Pseudo parts, attributes
// and anything unrecognized make the selector unprovable.
func selectorUnused(raw string, idx *usageIndex) (unused, provable bool) {
	for _, compound := range splitCompounds(raw) {
		parts, ok := splitSimpleParts(compound)
		if !ok {
			return false, false
		}
		for _, part := range parts {
			switch {
			case strings.HasPrefix(part, "."):
				if idx.classes != nil && !idx.classes[part[1:]] {
					return true, true
				}
			case strings.HasPrefix(part, "#"):
				if idx.ids != nil && !idx.ids[part[1:]] {
					return true, true
				}
			case part == "*":
				// universal, cannot rule anything out
			default:
				if idx.tags != nil && !idx.tags[strings.ToLower(part)] {
					return true, true
				}
			}
		}
	}
	return false, true
}

func splitCompounds(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == '>' || r == '+' || r == '~'
	})
}

// splitSimpleParts breaks "div.a#b" into ["div", ".a", "#b"]. Returns
// ok=false for syntax it does not understand (pseudos, attributes,
// escapes, functional selectors).
func splitSimpleParts(compound string) ([]string, bool) {
	if strings.ContainsAny(compound, ":[()\\") {
		return nil, false
	}
	var parts []string
	start := 0
	for i := 1; i < len(compound); i++ {
		if compound[i] == '.' || compound[i] == '#' {
			parts = append(parts, compound[start:i])
			start = i
		}
	}
	parts = append(parts, compound[start:])
	out := parts[:0]
	for _, p := range parts {
		if p != "" && p != "." && p != "#" {
			out = append(out, p)
		}
	}
	return out, true
}
