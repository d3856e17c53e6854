package compress

import (
	"sort"

	"github.com/maruel/natural"
	"github.com/zeebo/blake3"

	"cssc/css"
)

// Fingerprints are comparable keys derived from canonical node text,
// used to bucket merge candidates so the restructuring pass compares
// rules pairwise only within a bucket. They are recomputed on demand
// from the live tree and never cached across mutations.

type fingerprint [32]byte

func hashLines(lines []string) fingerprint {
	h := blake3.New()
	for _, line := range lines {
		h.WriteString(line) //nolint:errcheck
		h.Write([]byte{0})  //nolint:errcheck
	}
	var fp fingerprint
	copy(fp[:], h.Sum(nil))
	return fp
}

// selectorFingerprint keys a selector list by its selector set: order
// does not matter for matching, so the canonical form is sorted.
func selectorFingerprint(sl css.SelectorList) fingerprint {
	raws := make([]string, len(sl.Selectors))
	for i, s := range sl.Selectors {
		raws[i] = s.Raw
	}
	sort.Sort(natural.StringSlice(raws))
	return hashLines(raws)
}

// blockFingerprint keys a declaration block. Declaration order is
// semantically significant in general, so the key is over the ordered
// sequence - except when every property occurs exactly once and nothing
// but declarations is present, in which case a canonically sorted key
// lets order-insensitive equivalent blocks land in the same bucket.
func blockFingerprint(b *css.Block) fingerprint {
	var (
		lines     []string
		sortable  = true
		seen      = map[string]bool{}
		important string
	)
	for it := b.Children.First(); it != nil; it = it.Next() {
		d, ok := it.Value.(*css.Declaration)
		if !ok {
			sortable = false
			lines = append(lines, css.Text(it.Value))
			continue
		}
		if seen[d.Property] {
			sortable = false
		}
		seen[d.Property] = true
		if d.Important {
			important = "!"
		} else {
			important = ""
		}
		lines = append(lines, d.Property+":"+d.Value.String()+important)
	}
	if sortable {
		sort.Sort(natural.StringSlice(lines))
	}
	return hashLines(lines)
}
