package ops

import (
	"strings"

	"github.com/famvault/famvault/models"
)

const previewPrefixLen = 100

// FindDuplicates groups documents by an approximate fingerprint built from
// the title and the opening of the content preview. It is a cheap UI-side
// heuristic; the backend separately runs embedding-similarity dedup at
// upload time. Documents with matching titles but divergent later content
// are false positives here, and renamed copies are never caught.
func FindDuplicates(docs []models.Document) map[string][]models.Document {
	groups := make(map[string][]models.Document)
	for _, d := range docs {
		fp := fingerprint(d)
		groups[fp] = append(groups[fp], d)
	}
	for fp, group := range groups {
		if len(group) < 2 {
			delete(groups, fp)
		}
	}
	return groups
}

func fingerprint(d models.Document) string {
	preview := []rune(d.ContentPreview)
	if len(preview) > previewPrefixLen {
		preview = preview[:previewPrefixLen]
	}
	return strings.ToLower(strings.TrimSpace(d.Title)) + "_" +
		strings.ToLower(strings.TrimSpace(string(preview)))
}
