package service_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const textExport = `Activity report
--------------------------------------------------------------------------------
1985-05-21 09:00 | 1985-05-21 12:00 | 3h | coding | work
	#project, #deepwork
finished the importer
1985-05-21 13:00 | 1985-05-21 14:00 | 1h | commute | travel
1985-05-22 09:00 |  | | standup | work
--------------------------------------------------------------------------------
Totals: irrelevant
`

func writeImportFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportText(t *testing.T) {
	svc := newTestService(t)
	path := writeImportFile(t, "export.txt", textExport)

	imported, err := svc.ImportText(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(imported) != 3 {
		t.Fatalf("imported %d segments, want 3", len(imported))
	}

	segments, err := svc.Segments()
	if err != nil {
		t.Fatal(err)
	}
	if len(segments) != 3 {
		t.Fatalf("stored %d segments, want 3", len(segments))
	}

	first := segments[0]
	if !first.Start.Equal(at(1985, time.May, 21, 9, 0)) {
		t.Errorf("first start = %v", first.Start)
	}
	if first.End == nil || !first.End.Equal(at(1985, time.May, 21, 12, 0)) {
		t.Errorf("first end = %v", first.End)
	}
	if !strings.HasPrefix(first.Description, "work@coding") {
		t.Errorf("first description = %q", first.Description)
	}
	if !strings.Contains(first.Description, "finished the importer") {
		t.Errorf("continuation line lost: %q", first.Description)
	}
	if !first.HasTag("project") || !first.HasTag("deepwork") {
		t.Errorf("first tags = %v", first.TagNames())
	}

	travel := segments[1]
	if !travel.Passive {
		t.Error("travel entry must be passive")
	}

	open := segments[2]
	if open.End != nil {
		t.Errorf("entry without end column must stay open, got %v", *open.End)
	}
}

func TestImportTextWithoutSeparator(t *testing.T) {
	svc := newTestService(t)
	path := writeImportFile(t, "export.txt", "no table in here\n")

	if _, err := svc.ImportText(path); err == nil {
		t.Fatal("expected error for export without table separator")
	}
}

func TestImportJSON(t *testing.T) {
	svc := newTestService(t)

	export := `[
		{
			"start": "1985-05-21T09:00:00+02:00",
			"end": "1985-05-21T12:00:00+02:00",
			"passive": false,
			"tags": ["project"],
			"description": "coding"
		},
		{
			"start": "1985-05-21T13:00:00+02:00",
			"end": null,
			"passive": true,
			"tags": [],
			"description": "commute"
		}
	]`
	path := writeImportFile(t, "export.json", export)

	imported, err := svc.ImportJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(imported) != 2 {
		t.Fatalf("imported %d segments, want 2", len(imported))
	}

	segments, err := svc.Segments()
	if err != nil {
		t.Fatal(err)
	}
	if len(segments) != 2 {
		t.Fatalf("stored %d segments, want 2", len(segments))
	}
	if segments[0].Description != "coding" || !segments[0].HasTag("project") {
		t.Errorf("first segment = %+v", segments[0])
	}
	if !segments[1].Passive || segments[1].End != nil {
		t.Errorf("second segment = %+v", segments[1])
	}
}
