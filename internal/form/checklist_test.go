package form

import (
	"reflect"
	"testing"
)

// TestChecklistHappyPath replays the standard create flow: a draft with a
// title and an assignee validates cleanly and produces the exact payload the
// backend expects.
func TestChecklistHappyPath(t *testing.T) {
	d := NewChecklistDraft()
	d[ChecklistFieldTitolo] = "Invio grafica LED"
	d[ChecklistFieldAssegnatoA] = "sponsor"

	if errs := ValidateChecklist(d); len(errs) != 0 {
		t.Fatalf("ValidateChecklist() = %v, want no errors", errs)
	}

	got := ChecklistPayload(d)
	want := map[string]any{
		"titolo":      "Invio grafica LED",
		"descrizione": "",
		"assegnato_a": "sponsor",
		"completato":  false,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ChecklistPayload() = %v, want %v", got, want)
	}
	if _, ok := got[ChecklistFieldScadenza]; ok {
		t.Error("empty scadenza must be omitted from the payload")
	}
}

// TestChecklistMissingTitle checks the required-title error message.
func TestChecklistMissingTitle(t *testing.T) {
	d := NewChecklistDraft()
	d[ChecklistFieldTitolo] = ""
	d[ChecklistFieldAssegnatoA] = "sponsor"

	errs := ValidateChecklist(d)
	if len(errs) != 1 {
		t.Fatalf("ValidateChecklist() = %v, want exactly one error", errs)
	}
	if errs[ChecklistFieldTitolo] != "Inserisci il titolo del task" {
		t.Errorf("titolo error = %q, want %q", errs[ChecklistFieldTitolo], "Inserisci il titolo del task")
	}
}

// TestChecklistValidation covers the remaining field rules
func TestChecklistValidation(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(Draft)
		wantFields []string
	}{
		{
			name:       "Empty draft fails title and assignee",
			mutate:     func(d Draft) {},
			wantFields: []string{ChecklistFieldTitolo, ChecklistFieldAssegnatoA},
		},
		{
			name: "Unknown assignee rejected",
			mutate: func(d Draft) {
				d[ChecklistFieldTitolo] = "x"
				d[ChecklistFieldAssegnatoA] = "agenzia"
			},
			wantFields: []string{ChecklistFieldAssegnatoA},
		},
		{
			name: "Malformed due date rejected",
			mutate: func(d Draft) {
				d[ChecklistFieldTitolo] = "x"
				d[ChecklistFieldAssegnatoA] = "club"
				d[ChecklistFieldScadenza] = "31/12/2026"
			},
			wantFields: []string{ChecklistFieldScadenza},
		},
		{
			name: "Valid due date accepted",
			mutate: func(d Draft) {
				d[ChecklistFieldTitolo] = "x"
				d[ChecklistFieldAssegnatoA] = "club"
				d[ChecklistFieldScadenza] = "2026-12-31"
			},
			wantFields: nil,
		},
		{
			name: "Whitespace-only title rejected",
			mutate: func(d Draft) {
				d[ChecklistFieldTitolo] = "   "
				d[ChecklistFieldAssegnatoA] = "club"
			},
			wantFields: []string{ChecklistFieldTitolo},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewChecklistDraft()
			tt.mutate(d)
			errs := ValidateChecklist(d)
			if len(errs) != len(tt.wantFields) {
				t.Fatalf("got %d errors (%v), want %d", len(errs), errs, len(tt.wantFields))
			}
			for _, f := range tt.wantFields {
				if _, ok := errs[f]; !ok {
					t.Errorf("missing error for field %q: %v", f, errs)
				}
			}
		})
	}
}

// TestChecklistPayloadWithDueDate checks a set scadenza and completed flag
// survive into the payload.
func TestChecklistPayloadWithDueDate(t *testing.T) {
	d := NewChecklistDraft()
	d[ChecklistFieldTitolo] = "Consegna materiali"
	d[ChecklistFieldDescrizione] = "Banner 3x1"
	d[ChecklistFieldAssegnatoA] = "club"
	d[ChecklistFieldScadenza] = "2026-06-30"
	d[ChecklistFieldCompletato] = "true"

	got := ChecklistPayload(d)
	if got["scadenza"] != "2026-06-30" {
		t.Errorf("scadenza = %v, want 2026-06-30", got["scadenza"])
	}
	if got["completato"] != true {
		t.Errorf("completato = %v, want true", got["completato"])
	}
	if got["descrizione"] != "Banner 3x1" {
		t.Errorf("descrizione = %v, want Banner 3x1", got["descrizione"])
	}
}
