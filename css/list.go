package css

// List is a doubly-linked sequence of tree nodes. All structural
// operations (append, insert-before, remove) stay valid while the list is
// being iterated: iteration holds on to items, not positions, and Each
// resolves the successor before visiting an item so the visitor may remove
// the item it is given.
type List struct {
	root Item // sentinel
	size int
}

// Item is one element of a List.
type Item struct {
	Value Node

	prev, next *Item
	list       *List
}

func NewList() *List {
	l := &List{}
	l.root.prev = &l.root
	l.root.next = &l.root
	l.root.list = l
	return l
}

func (l *List) Len() int { return l.size }

func (l *List) Empty() bool { return l.size == 0 }

// First returns the first item or nil for an empty list.
func (l *List) First() *Item {
	if l.size == 0 {
		return nil
	}
	return l.root.next
}

// Last returns the last item or nil for an empty list.
func (l *List) Last() *Item {
	if l.size == 0 {
		return nil
	}
	return l.root.prev
}

// Next returns the following item or nil at the end of the list.
// It returns nil for an item already removed from its list.
func (it *Item) Next() *Item {
	if it.list == nil || it.next == &it.list.root {
		return nil
	}
	return it.next
}

// Prev returns the preceding item or nil at the start of the list.
func (it *Item) Prev() *Item {
	if it.list == nil || it.prev == &it.list.root {
		return nil
	}
	return it.prev
}

func (l *List) insert(n Node, after *Item) *Item {
	it := &Item{Value: n, prev: after, next: after.next, list: l}
	after.next.prev = it
	after.next = it
	l.size++
	return it
}

// PushBack appends n and returns its item.
func (l *List) PushBack(n Node) *Item {
	return l.insert(n, l.root.prev)
}

// PushFront prepends n and returns its item.
func (l *List) PushFront(n Node) *Item {
	return l.insert(n, &l.root)
}

// InsertBefore inserts n immediately before at, which must belong to l.
func (l *List) InsertBefore(n Node, at *Item) *Item {
	if at.list != l {
		panic("css: InsertBefore item from another list")
	}
	return l.insert(n, at.prev)
}

// Remove detaches it from the list and returns its node. Removing an item
// twice is a no-op returning the node.
func (l *List) Remove(it *Item) Node {
	if it.list != l {
		return it.Value
	}
	it.prev.next = it.next
	it.next.prev = it.prev
	it.prev = nil
	it.next = nil
	it.list = nil
	l.size--
	return it.Value
}

// Each visits every item in order. The visitor may remove the item it is
// given (and any item already visited) without disturbing the iteration.
func (l *List) Each(fn func(it *Item)) {
	for it := l.First(); it != nil; {
		next := it.Next()
		fn(it)
		it = next
	}
}

// TakeAll moves every item of other to the back of l, leaving other empty.
func (l *List) TakeAll(other *List) {
	for it := other.First(); it != nil; {
		next := it.Next()
		n := other.Remove(it)
		l.PushBack(n)
		it = next
	}
}
