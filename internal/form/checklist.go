package form

import "strings"

// Checklist task draft fields. A checklist task is a deliverable attached to
// a contract (e.g. sending LED board artwork) assigned to either the club or
// the sponsor side.
const (
	ChecklistFieldTitolo      = "titolo"
	ChecklistFieldDescrizione = "descrizione"
	ChecklistFieldAssegnatoA  = "assegnato_a"
	ChecklistFieldScadenza    = "scadenza"
	ChecklistFieldCompletato  = "completato"
)

// ChecklistAssignees are the valid values for the assegnato_a field.
var ChecklistAssignees = []string{"club", "sponsor"}

// NewChecklistDraft seeds an empty checklist task draft.
func NewChecklistDraft() Draft {
	return Draft{
		ChecklistFieldTitolo:      "",
		ChecklistFieldDescrizione: "",
		ChecklistFieldAssegnatoA:  "",
		ChecklistFieldScadenza:    "",
		ChecklistFieldCompletato:  "",
	}
}

// ValidateChecklist checks a checklist task draft. Messages are the exact
// strings shown inline next to the fields.
func ValidateChecklist(d Draft) FieldErrors {
	errs := FieldErrors{}
	requireField(d, ChecklistFieldTitolo, "Inserisci il titolo del task", errs)
	requireOneOf(d, ChecklistFieldAssegnatoA, ChecklistAssignees, "Seleziona un assegnatario", errs)
	checkDate(d, ChecklistFieldScadenza, "Data di scadenza non valida", errs)
	return errs
}

// ChecklistSteps returns the single-step definition for the checklist form.
func ChecklistSteps() []Step {
	return []Step{
		{Title: "Nuovo task", Validate: ValidateChecklist},
	}
}

// ChecklistPayload builds the create/update request body from a valid draft.
// completato defaults to false for new tasks and an empty scadenza is omitted
// entirely rather than sent as an empty string.
func ChecklistPayload(d Draft) map[string]any {
	payload := map[string]any{
		ChecklistFieldTitolo:      strings.TrimSpace(d[ChecklistFieldTitolo]),
		ChecklistFieldDescrizione: strings.TrimSpace(d[ChecklistFieldDescrizione]),
		ChecklistFieldAssegnatoA:  strings.TrimSpace(d[ChecklistFieldAssegnatoA]),
		ChecklistFieldCompletato:  d[ChecklistFieldCompletato] == "true",
	}
	if v := strings.TrimSpace(d[ChecklistFieldScadenza]); v != "" {
		payload[ChecklistFieldScadenza] = v
	}
	return payload
}
