package category

import "strings"

// The dashboard backend stores a script's category as a free-text path such
// as "Maintenance / Disk" rather than as a first-class entity. This file is
// the adapter that turns those paths into a forest with stable slug ids. It
// sits apart from the tree operations so a real category API can replace it
// without touching them.

// Slug converts a display name to a stable id segment: lowercased, runs of
// spaces, hyphens and underscores collapse to a single hyphen, everything
// else outside [a-z0-9] is dropped.
func Slug(name string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingHyphen = false
		case r == ' ', r == '-', r == '_':
			pendingHyphen = true
		}
	}
	return b.String()
}

// PathID returns the id a free-text category path derives to, or "" for a
// blank path. Segments are separated by "/" and slugged individually, so
// "Maintenance / Disk Cleanup" becomes "maintenance/disk-cleanup".
func PathID(path string) string {
	segs := splitPath(path)
	if len(segs) == 0 {
		return ""
	}
	id := reserveRootID(Slug(segs[0]))
	for _, seg := range segs[1:] {
		id += "/" + Slug(seg)
	}
	return id
}

// DeriveForest builds a forest from free-text category paths in first-seen
// order. Node ids are the slash-joined slugs of the path prefix, so equal
// names at different depths stay distinct. Blank paths are skipped.
func DeriveForest(paths []string) []*Node {
	var forest []*Node
	for _, path := range paths {
		forest = insertPath(forest, splitPath(path), "")
	}
	return forest
}

func splitPath(path string) []string {
	var segs []string
	for _, part := range strings.Split(path, "/") {
		part = strings.TrimSpace(part)
		if Slug(part) != "" {
			segs = append(segs, part)
		}
	}
	return segs
}

func insertPath(nodes []*Node, segs []string, prefix string) []*Node {
	if len(segs) == 0 {
		return nodes
	}
	id := Slug(segs[0])
	if prefix != "" {
		id = prefix + "/" + id
	} else {
		id = reserveRootID(id)
	}
	for i, n := range nodes {
		if n.ID == id {
			copied := n.clone()
			copied.Children = insertPath(n.Children, segs[1:], id)
			return replaceAt(nodes, i, copied)
		}
	}
	node := &Node{ID: id, Name: segs[0]}
	node.Children = insertPath(nil, segs[1:], id)
	return append(append([]*Node{}, nodes...), node)
}

// reserveRootID keeps a top-level category literally named "root" from
// colliding with the RootID sentinel.
func reserveRootID(id string) string {
	if id == RootID {
		return id + "-category"
	}
	return id
}
