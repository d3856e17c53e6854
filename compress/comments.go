package compress

import "cssc/css"

// filterComments applies the comment retention policy over the whole
// tree. The parser already dropped ordinary comments, so only
// exclamation comments remain to be filtered.
func (c *context) filterComments(sheet *css.StyleSheet) {
	if c.set.comments == CommentsExclamation {
		return
	}
	kept := 0
	sheet.WalkComments(func(list *css.List, it *css.Item, _ *css.Comment) {
		if c.set.comments == CommentsFirstExclamation && kept == 0 {
			kept++
			return
		}
		list.Remove(it)
		c.n.commentsRemoved++
	})
}

// filterBlockComments is the same policy over a bare declaration block.
func (c *context) filterBlockComments(block *css.Block) {
	if c.set.comments == CommentsExclamation {
		return
	}
	kept := 0
	block.Children.Each(func(it *css.Item) {
		if _, ok := it.Value.(*css.Comment); !ok {
			return
		}
		if c.set.comments == CommentsFirstExclamation && kept == 0 {
			kept++
			return
		}
		block.Children.Remove(it)
		c.n.commentsRemoved++
	})
}
