package compress

import (
	"strings"

	"go.uber.org/zap"

	"cssc/css"
)

// The restructuring pass merges rules across the stylesheet while
// preserving cascade outcome. Two dual strategies: rules with equal
// blocks merge their selector lists (selector-merge), rules with equal
// selector lists concatenate their blocks (declaration-merge). A merge
// is performed only when no rule between the pair could override any
// property of the moved rule for any element both could match; overlap
// detection is the documented textual approximation (identical selector
// text) widened by cascade-group intersection. When in doubt the pair
// stays unmerged.

// maxRestructurePasses caps fixed-point iteration.
const maxRestructurePasses = 10

func (c *context) restructure(sheet *css.StyleSheet) {
	c.restructureList(sheet.Children)
}

func (c *context) restructureList(list *css.List) {
	c.mergeAdjacentAtRules(list)

	// every conditional group restructures independently; rules never
	// cross an at-rule boundary
	list.Each(func(it *css.Item) {
		if at, ok := it.Value.(*css.AtRule); ok && at.Block != nil && containsRules(at.Block) {
			c.restructureList(at.Block.Children)
		}
	})

	capped := true
	for range maxRestructurePasses {
		c.n.passes++
		if c.pass(list) == 0 {
			capped = false
			break
		}
	}
	if capped {
		c.n.passCapHits++
		c.log.Debug("Merging stopped at the pass cap", zap.Int("cap", maxRestructurePasses))
	}

	c.removeEmpty(list)
}

// mergeAdjacentAtRules joins immediately adjacent at-rules with an
// identical name and prelude, concatenating their contents in order.
func (c *context) mergeAdjacentAtRules(list *css.List) {
	list.Each(func(it *css.Item) {
		at, ok := it.Value.(*css.AtRule)
		if !ok || at.Block == nil {
			return
		}
		for next := it.Next(); next != nil; next = it.Next() {
			nat, ok := next.Value.(*css.AtRule)
			if !ok || nat.Block == nil || nat.Name != at.Name || nat.Prelude != at.Prelude {
				return
			}
			at.Block.Children.TakeAll(nat.Block.Children)
			list.Remove(next)
			c.n.atRulesMerged++
		}
	})
}

type candidate struct {
	it       *css.Item
	rule     *css.Rule
	selKey   fingerprint
	blockKey fingerprint
	frozen   bool
	removed  bool
}

// pass performs one scan-and-merge sweep over a rule list and returns
// the number of merges performed. Fingerprint buckets keep the most
// recent unfrozen candidate so comparisons happen only within a bucket.
func (c *context) pass(list *css.List) int {
	var cands []*candidate
	bySel := make(map[fingerprint]int)
	byBlock := make(map[fingerprint]int)
	merges := 0

	reset := func() {
		bySel = make(map[fingerprint]int)
		byBlock = make(map[fingerprint]int)
	}

	for it := list.First(); it != nil; it = it.Next() {
		rule, ok := it.Value.(*css.Rule)
		if !ok {
			if _, isComment := it.Value.(*css.Comment); isComment {
				continue
			}
			// at-rules and raw fragments are opaque boundaries
			reset()
			continue
		}
		if rule.Block.Children.Empty() {
			continue
		}

		cand := &candidate{
			it:       it,
			rule:     rule,
			selKey:   selectorFingerprint(rule.Selectors),
			blockKey: blockFingerprint(rule.Block),
		}

		if j, ok := bySel[cand.selKey]; ok {
			prev := cands[j]
			if !prev.frozen && !prev.removed && c.safeBetween(prev, cand) {
				c.mergeDeclarations(list, prev, cand)
				merges++
			} else {
				prev.frozen = true
			}
		} else if j, ok := byBlock[cand.blockKey]; ok {
			prev := cands[j]
			if !prev.frozen && !prev.removed && c.safeBetween(prev, cand) {
				c.mergeSelectors(list, prev, cand)
				merges++
			} else {
				prev.frozen = true
			}
		}

		cands = append(cands, cand)
		bySel[cand.selKey] = len(cands) - 1
		byBlock[cand.blockKey] = len(cands) - 1
	}
	return merges
}

// mergeDeclarations concatenates prev's block in front of cur's and
// drops the earlier rule: later declarations override earlier ones for
// the same property, exactly as the cascade did before the merge. The
// retained rule keeps the later position.
func (c *context) mergeDeclarations(list *css.List, prev, cur *candidate) {
	first := cur.rule.Block.Children.First()
	for it := prev.rule.Block.Children.First(); it != nil; {
		next := it.Next()
		n := prev.rule.Block.Children.Remove(it)
		if first != nil {
			cur.rule.Block.Children.InsertBefore(n, first)
		} else {
			cur.rule.Block.Children.PushBack(n)
		}
		it = next
	}
	list.Remove(prev.it)
	prev.removed = true
	c.dedupDeclarations(cur.rule.Block)
	cur.blockKey = blockFingerprint(cur.rule.Block)
	c.n.rulesMerged++
	c.n.rulesRemoved++
}

// mergeSelectors unions the selector lists of two block-identical rules
// into the later one and drops the earlier rule.
func (c *context) mergeSelectors(list *css.List, prev, cur *candidate) {
	merged := prev.rule.Selectors
	merged.Merge(cur.rule.Selectors)
	cur.rule.Selectors = merged
	list.Remove(prev.it)
	prev.removed = true
	cur.selKey = selectorFingerprint(cur.rule.Selectors)
	c.n.rulesMerged++
	c.n.rulesRemoved++
}

// safeBetween reports whether prev's rule may move to cur's position:
// no rule strictly between them may both match an element prev matches
// (textual selector identity) and declare a property that could compete
// with one of prev's. Non-rule items other than comments make the gap
// opaque.
func (c *context) safeBetween(prev, cur *candidate) bool {
	for it := prev.it.Next(); it != nil && it != cur.it; it = it.Next() {
		switch n := it.Value.(type) {
		case *css.Comment:
			continue
		case *css.Rule:
			if n.Selectors.Intersects(prev.rule.Selectors) &&
				propertiesCompete(n.Block, prev.rule.Block) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// propertiesCompete reports whether a property declared in one block
// could set the same longhand as a property declared in the other.
// Comparison goes through cascade groups, which over-approximate
// overlap (margin vs margin-top, gap vs row-gap), so a doubtful pair
// only suppresses a merge, never permits an unsafe one. The all
// property resets everything and competes with everything.
func propertiesCompete(a, b *css.Block) bool {
	groups := make(map[string]bool)
	resetAll := false
	a.Declarations(func(_ *css.Item, d *css.Declaration) {
		for _, g := range propertyGroups(d.Property) {
			if g == groupAll {
				resetAll = true
			}
			groups[g] = true
		}
	})
	if len(groups) == 0 {
		return false
	}
	compete := false
	b.Declarations(func(_ *css.Item, d *css.Declaration) {
		for _, g := range propertyGroups(d.Property) {
			if resetAll || g == groupAll || groups[g] {
				compete = true
			}
		}
	})
	return compete
}

const groupAll = "all"

// propertyAliases maps shorthands to the longhands they set without
// sharing their dash prefix. Prefix-related pairs (margin and
// margin-top) need no entry.
var propertyAliases = map[string][]string{
	"gap":             {"row-gap", "column-gap"},
	"grid-gap":        {"row-gap", "column-gap"},
	"grid-row-gap":    {"row-gap"},
	"grid-column-gap": {"column-gap"},
	"place-content":   {"align-content", "justify-content"},
	"place-items":     {"align-items", "justify-items"},
	"place-self":      {"align-self", "justify-self"},
	"columns":         {"column-width", "column-count"},
	"inset":           {"top", "right", "bottom", "left"},
	"font":            {"line-height"},
}

// propertyGroups returns the cascade groups a property can affect: the
// property itself, every dash-prefix shorthand above it, and aliased
// longhands. Custom properties group only with themselves.
func propertyGroups(prop string) []string {
	p := strings.ToLower(prop)
	if strings.HasPrefix(p, "--") {
		return []string{p}
	}
	if strings.HasPrefix(p, "-") {
		// vendor prefix
		if i := strings.Index(p[1:], "-"); i >= 0 {
			p = p[i+2:]
		}
	}
	if p == groupAll {
		return []string{groupAll}
	}
	groups := []string{p}
	for i := strings.LastIndexByte(p, '-'); i > 0; i = strings.LastIndexByte(p[:i], '-') {
		groups = append(groups, p[:i])
	}
	return append(groups, propertyAliases[p]...)
}

func containsRules(b *css.Block) bool {
	for it := b.Children.First(); it != nil; it = it.Next() {
		switch it.Value.(type) {
		case *css.Rule, *css.AtRule:
			return true
		}
	}
	return false
}

// removeEmpty drops rules whose blocks lost all content and conditional
// at-rules that ended up empty.
func (c *context) removeEmpty(list *css.List) {
	list.Each(func(it *css.Item) {
		switch n := it.Value.(type) {
		case *css.Rule:
			if n.Block.Children.Empty() {
				list.Remove(it)
				c.n.rulesRemoved++
			}
		case *css.AtRule:
			if n.Block != nil && n.Block.Children.Empty() && conditionalAtRule(n.Name) {
				list.Remove(it)
				c.n.rulesRemoved++
			}
		}
	})
}

func conditionalAtRule(name string) bool {
	switch name {
	case "@media", "@supports", "@layer", "@container":
		return true
	}
	return false
}
