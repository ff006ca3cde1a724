package desired

import (
	"errors"
	"testing"

	"github.com/accord-sync/accord/internal/tabular"
)

func workspacesWorkbook(rows [][]tabular.Cell) *tabular.MemWorkbook {
	return &tabular.MemWorkbook{
		Source: "workspaces.xlsx",
		Sheets: []*tabular.MemSheet{{
			SheetName: WorkspacesSheet,
			HeaderRow: []tabular.Cell{tabular.String("Slug"), tabular.String("Name")},
			DataRows:  rows,
		}},
	}
}

func TestLoadWorkspaces(t *testing.T) {
	wb := workspacesWorkbook([][]tabular.Cell{
		{tabular.String(" Clinic-A "), tabular.String("Clinic A")},
		{tabular.String("research"), tabular.String(" Research ")},
	})

	got, err := LoadWorkspaces(wb, "workspaces.xlsx", "Slug", "Name")
	if err != nil {
		t.Fatalf("LoadWorkspaces() error = %v", err)
	}

	want := []Workspace{
		{Slug: "clinic-a", Name: "[CLINIC-A] Clinic A"},
		{Slug: "research", Name: "[RESEARCH] Research"},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("workspace[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLoadWorkspaces_SkipsIncompleteRows(t *testing.T) {
	wb := workspacesWorkbook([][]tabular.Cell{
		{tabular.String("clinic-a"), tabular.Empty},
		{tabular.Empty, tabular.String("No Slug")},
		{},
		{tabular.String("kept"), tabular.String("Kept")},
	})

	got, err := LoadWorkspaces(wb, "workspaces.xlsx", "Slug", "Name")
	if err != nil {
		t.Fatalf("LoadWorkspaces() error = %v", err)
	}
	if len(got) != 1 || got[0].Slug != "kept" {
		t.Errorf("LoadWorkspaces() = %+v, want only 'kept'", got)
	}
}

func TestLoadWorkspaces_DuplicateSlug(t *testing.T) {
	// Slugs are normalized before the duplicate check, so differing case is
	// still a collision.
	wb := workspacesWorkbook([][]tabular.Cell{
		{tabular.String("clinic-a"), tabular.String("Clinic A")},
		{tabular.String("CLINIC-A"), tabular.String("Clinic A Again")},
	})

	_, err := LoadWorkspaces(wb, "workspaces.xlsx", "Slug", "Name")

	var dErr *DuplicateSlugError
	if !errors.As(err, &dErr) {
		t.Fatalf("LoadWorkspaces() error = %v, want *DuplicateSlugError", err)
	}
	if dErr.Slug != "clinic-a" || dErr.Row != 3 {
		t.Errorf("DuplicateSlugError = %+v, want slug clinic-a at row 3", dErr)
	}
}

func TestLoadWorkspaces_MissingSheet(t *testing.T) {
	wb := &tabular.MemWorkbook{
		Source: "workspaces.xlsx",
		Sheets: []*tabular.MemSheet{{SheetName: "Sheet1"}},
	}

	_, err := LoadWorkspaces(wb, "workspaces.xlsx", "Slug", "Name")

	var nf *tabular.SheetNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("LoadWorkspaces() error = %v, want *SheetNotFoundError", err)
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("clinic-a", " Clinic A "); got != "[CLINIC-A] Clinic A" {
		t.Errorf("DisplayName() = %q, want %q", got, "[CLINIC-A] Clinic A")
	}
}
