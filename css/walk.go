package css

// WalkBlocks visits every declaration block in document order: rule
// blocks at the top level and inside at-rules, at any nesting depth. The
// visitor may mutate the block's children.
func (s *StyleSheet) WalkBlocks(fn func(b *Block)) {
	if s == nil || s.Children == nil {
		return
	}
	walkBlocks(s.Children, fn)
}

func walkBlocks(list *List, fn func(b *Block)) {
	list.Each(func(it *Item) {
		switch n := it.Value.(type) {
		case *Rule:
			fn(n.Block)
		case *AtRule:
			if n.Block != nil {
				walkBlocks(n.Block.Children, fn)
				// conditional group at-rules nest rules, not declarations;
				// anything else (@font-face and friends) is one block
				if hasDeclarations(n.Block) {
					fn(n.Block)
				}
			}
		}
	})
}

func hasDeclarations(b *Block) bool {
	for it := b.Children.First(); it != nil; it = it.Next() {
		if _, ok := it.Value.(*Declaration); ok {
			return true
		}
	}
	return false
}

// WalkComments visits every comment node in document order.
func (s *StyleSheet) WalkComments(fn func(list *List, it *Item, c *Comment)) {
	if s == nil || s.Children == nil {
		return
	}
	walkComments(s.Children, fn)
}

func walkComments(list *List, fn func(list *List, it *Item, c *Comment)) {
	list.Each(func(it *Item) {
		switch n := it.Value.(type) {
		case *Comment:
			fn(list, it, n)
		case *Rule:
			walkComments(n.Block.Children, fn)
		case *AtRule:
			if n.Block != nil {
				walkComments(n.Block.Children, fn)
			}
		}
	})
}
