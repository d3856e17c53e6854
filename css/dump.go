package css

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump renders an indented structural view of the tree for diagnostics.
// The output format is stable but not parseable CSS.
func (s *StyleSheet) Dump() string {
	tw := treeWriter{w: &strings.Builder{}}
	if s == nil || s.Children == nil {
		tw.line(0, "StyleSheet (empty)")
		return tw.String()
	}
	tw.line(0, "StyleSheet (%d items)", s.Children.Len())
	dumpList(&tw, 1, s.Children)
	return tw.String()
}

func dumpList(tw *treeWriter, depth int, list *List) {
	for it := list.First(); it != nil; it = it.Next() {
		switch n := it.Value.(type) {
		case *Rule:
			tw.line(depth, "Rule %s", n.Selectors.String())
			dumpList(tw, depth+1, n.Block.Children)
		case *AtRule:
			if n.Block == nil {
				tw.text(depth, "AtRule "+n.Name, n.Prelude)
				continue
			}
			tw.line(depth, "AtRule %s %s", n.Name, n.Prelude)
			dumpList(tw, depth+1, n.Block.Children)
		case *Declaration:
			label := n.Property
			if n.Important {
				label += " !important"
			}
			tw.text(depth, label, n.Value.String())
		case *Comment:
			tw.text(depth, "Comment", n.Text)
		case *Raw:
			tw.text(depth, "Raw", n.Data)
		}
	}
}

// treeWriter is a small indented-line writer shared by dump output.
type treeWriter struct {
	w *strings.Builder
}

func (tw treeWriter) String() string {
	return tw.w.String()
}

func (tw treeWriter) line(depth int, format string, args ...any) {
	for range depth {
		tw.w.WriteString("  ")
	}
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

func (tw treeWriter) text(depth int, label, value string) {
	for range depth {
		tw.w.WriteString("  ")
	}
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(strconv.Quote(value))
	tw.w.WriteByte('\n')
}
