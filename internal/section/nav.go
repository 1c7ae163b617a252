package section

import "github.com/dgallion1/regreader/internal/slug"

// BuildIndex maps heading metadata to navigation entries. The index is
// deliberately built from the metadata list, not from a parsed tree, because
// the manifest can arrive before or without the document body. Ids resolve
// against parser output whenever the manifest titles equal the heading text
// in the body.
func BuildIndex(refs []HeadingRef) []NavEntry {
	entries := make([]NavEntry, 0, len(refs))
	for _, h := range refs {
		entries = append(entries, NavEntry{
			ID:    slug.Make(h.Title, h.Level),
			Title: h.Title,
			Level: h.Level,
		})
	}
	return entries
}

// AncestorOf returns the id of the nearest level-2 entry preceding the given
// level-3 id in document order. It returns "" for level-2 ids, unknown ids,
// and orphaned subsections. When duplicate titles collide on one id, the
// last occurrence wins.
func AncestorOf(entries []NavEntry, id string) string {
	at := -1
	for i, e := range entries {
		if e.ID == id {
			at = i
		}
	}
	if at < 0 || entries[at].Level != 3 {
		return ""
	}
	for i := at - 1; i >= 0; i-- {
		if entries[i].Level == 2 {
			return entries[i].ID
		}
	}
	return ""
}
