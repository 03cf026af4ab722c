package restype_test

import (
	"testing"

	"github.com/studysync/studysync/internal/app/system/restype"
	"github.com/studysync/studysync/internal/domain/models"
)

func TestInfer(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://drive.google.com/file/d/abc123/view", models.ResourceTypeDrive},
		{"https://docs.google.com/document/d/xyz/edit", models.ResourceTypeDrive},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", models.ResourceTypeYouTube},
		{"https://youtu.be/dQw4w9WgXcQ", models.ResourceTypeYouTube},
		{"https://example.com/syllabus.pdf", models.ResourceTypePDF},
		{"https://notion.so/workspace/page", models.ResourceTypeNotes},
		{"https://example.com/shared-notes", models.ResourceTypeNotes},
		{"https://example.com/article", models.ResourceTypeLink},
		{"", models.ResourceTypeLink},
	}
	for _, tc := range cases {
		if got := restype.Infer(tc.url); got != tc.want {
			t.Errorf("Infer(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

// A Google Doc exported as PDF stays drive: domain rules run before the
// pdf marker.
func TestInfer_DriveBeatsPDF(t *testing.T) {
	url := "https://docs.google.com/document/d/abc/export?format=pdf"
	if got := restype.Infer(url); got != models.ResourceTypeDrive {
		t.Errorf("Infer(%q) = %q, want %q", url, got, models.ResourceTypeDrive)
	}
}

func TestResolve(t *testing.T) {
	cases := []struct {
		name      string
		requested string
		url       string
		want      string
	}{
		{"explicit valid type wins", models.ResourceTypeNotes, "https://youtu.be/abc", models.ResourceTypeNotes},
		{"empty falls to inference", "", "https://youtu.be/abc", models.ResourceTypeYouTube},
		{"default link falls to inference", models.ResourceTypeLink, "https://drive.google.com/x", models.ResourceTypeDrive},
		{"unknown type falls to inference", "spreadsheet", "https://example.com/a.pdf", models.ResourceTypePDF},
		{"nothing matches", "", "https://example.com/page", models.ResourceTypeLink},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := restype.Resolve(tc.requested, tc.url); got != tc.want {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tc.requested, tc.url, got, tc.want)
			}
		})
	}
}
