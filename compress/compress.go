package compress

import (
	"fmt"

	"cssc/css"
)

// Result of a whole-stylesheet compression. Ast is the very tree
// reference passed to Compress: the engine mutates in place and never
// replaces the root, so callers can rely on identity to detect "nothing
// to do".
type Result struct {
	Ast *css.StyleSheet
}

// BlockResult of a bare declaration-list compression.
type BlockResult struct {
	Ast *css.Block
}

// Compress minifies and, unless disabled, restructures the stylesheet in
// place. A nil tree yields an empty result rather than an error.
func Compress(sheet *css.StyleSheet, opts Options) Result {
	c := newContext(opts)
	if sheet == nil || sheet.Children == nil {
		c.log.Debug("Nothing to compress")
		return Result{}
	}

	c.filterComments(sheet)
	c.stage("comments", sheet)

	sheet.WalkBlocks(func(b *css.Block) {
		c.compressBlock(b)
	})
	c.sweep(sheet.Children)
	c.stage("values", sheet)

	if c.set.usage != nil {
		c.filterUsage(sheet)
		c.stage("usage", sheet)
	}

	if c.set.restructure {
		c.restructure(sheet)
		c.stage("restructure", sheet)
	}

	c.summary()
	return Result{Ast: sheet}
}

// CompressBlock runs the comment filter and value compressor over a bare
// declaration list. Restructuring does not apply without selectors. A
// block containing anything but declarations, comments or raw fragments
// is caller misuse and fails fast.
func CompressBlock(block *css.Block, opts Options) (BlockResult, error) {
	c := newContext(opts)
	if block == nil || block.Children == nil {
		c.log.Debug("Nothing to compress")
		return BlockResult{}, nil
	}

	for it := block.Children.First(); it != nil; it = it.Next() {
		switch it.Value.(type) {
		case *css.Declaration, *css.Comment, *css.Raw:
		default:
			return BlockResult{}, fmt.Errorf("compress: declaration list contains %T, not a declaration", it.Value)
		}
	}

	c.filterBlockComments(block)
	c.compressBlock(block)
	c.stageBlock("values", block)

	c.summary()
	return BlockResult{Ast: block}, nil
}

// sweep removes rules emptied by the value stage, at every nesting
// level.
func (c *context) sweep(list *css.List) {
	list.Each(func(it *css.Item) {
		if at, ok := it.Value.(*css.AtRule); ok && at.Block != nil && containsRules(at.Block) {
			c.sweep(at.Block.Children)
		}
	})
	c.removeEmpty(list)
}
