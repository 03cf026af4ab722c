// Package restype infers a resource's catalog type from its URL. The
// inference is a pure ordered rule table over lowercase substring
// matches: first rule that hits wins, falling through to "link". It is
// advisory metadata computed once at write time, never a content-type
// fetch.
package restype

import (
	"strings"

	"github.com/studysync/studysync/internal/domain/models"
)

type rule struct {
	markers []string
	typ     string
}

// Order matters: a Google Doc exported as PDF should still classify as
// drive, so domain rules run before the pdf marker.
var rules = []rule{
	{[]string{"drive.google.com", "docs.google.com"}, models.ResourceTypeDrive},
	{[]string{"youtube.com", "youtu.be"}, models.ResourceTypeYouTube},
	{[]string{"pdf"}, models.ResourceTypePDF},
	{[]string{"notion", "notes"}, models.ResourceTypeNotes},
}

// Infer returns the type for url.
func Infer(url string) string {
	lower := strings.ToLower(url)
	for _, r := range rules {
		for _, m := range r.markers {
			if strings.Contains(lower, m) {
				return r.typ
			}
		}
	}
	return models.ResourceTypeLink
}

// Resolve applies the write-time classification policy: an explicit
// non-default type from the caller wins; an empty or default ("link")
// choice is replaced by inference from the URL.
func Resolve(requested, url string) string {
	if requested != "" && requested != models.ResourceTypeLink && models.ValidResourceType(requested) {
		return requested
	}
	return Infer(url)
}
