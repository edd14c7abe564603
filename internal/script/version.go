package script

import (
	"sort"
	"time"
)

// Version is one revision of a script's content, as recorded by the backend.
type Version struct {
	ID        string    `json:"id"`
	Version   int       `json:"version"`
	Date      time.Time `json:"date"`
	Author    string    `json:"author"`
	Changelog []string  `json:"changelog,omitempty"`
	Content   string    `json:"content"`
}

// Latest returns the version with the highest ordinal, or nil when there are
// none.
func Latest(versions []*Version) *Version {
	var latest *Version
	for _, v := range versions {
		if latest == nil || v.Version > latest.Version {
			latest = v
		}
	}
	return latest
}

// ByOrdinal returns the version with the given ordinal, or nil.
func ByOrdinal(versions []*Version, ordinal int) *Version {
	for _, v := range versions {
		if v.Version == ordinal {
			return v
		}
	}
	return nil
}

// SortVersions orders versions by ascending ordinal, in place.
func SortVersions(versions []*Version) {
	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Version < versions[j].Version
	})
}
