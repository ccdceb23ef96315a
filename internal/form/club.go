package form

import "strings"

// Club draft fields. The club wizard spans three steps: registry data,
// contacts, and media.
const (
	ClubFieldNome      = "nome"
	ClubFieldCitta     = "citta"
	ClubFieldSport     = "sport"
	ClubFieldEmail     = "email"
	ClubFieldTelefono  = "telefono"
	ClubFieldReferente = "referente"
	ClubFieldLogoURL   = "logo_url"
	ClubFieldNote      = "note"
)

// ClubSports are the supported sport disciplines.
var ClubSports = []string{"calcio", "basket", "volley", "rugby", "altro"}

// NewClubDraft seeds a club draft for creation.
func NewClubDraft() Draft {
	return Draft{
		ClubFieldNome:      "",
		ClubFieldCitta:     "",
		ClubFieldSport:     "",
		ClubFieldEmail:     "",
		ClubFieldTelefono:  "",
		ClubFieldReferente: "",
		ClubFieldLogoURL:   "",
		ClubFieldNote:      "",
	}
}

// SeedClubDraft fills a draft from an existing record for editing. Unknown
// keys in the record are ignored; missing keys stay empty.
func SeedClubDraft(record map[string]string) Draft {
	d := NewClubDraft()
	for k := range d {
		if v, ok := record[k]; ok {
			d[k] = v
		}
	}
	return d
}

func validateClubRegistry(d Draft) FieldErrors {
	errs := FieldErrors{}
	requireField(d, ClubFieldNome, "Inserisci il nome del club", errs)
	requireField(d, ClubFieldCitta, "Inserisci la città", errs)
	requireOneOf(d, ClubFieldSport, ClubSports, "Seleziona uno sport", errs)
	return errs
}

func validateClubContacts(d Draft) FieldErrors {
	errs := FieldErrors{}
	requireField(d, ClubFieldEmail, "Inserisci l'email di contatto", errs)
	checkEmail(d, ClubFieldEmail, "Indirizzo email non valido", errs)
	return errs
}

func validateClubMedia(d Draft) FieldErrors {
	// Logo and notes are optional.
	return FieldErrors{}
}

// ClubSteps returns the three-step definition for the club wizard.
func ClubSteps() []Step {
	return []Step{
		{Title: "Dati societari", Validate: validateClubRegistry},
		{Title: "Contatti", Validate: validateClubContacts},
		{Title: "Logo e note", Validate: validateClubMedia},
	}
}

// ClubPayload builds the create/update request body from a valid draft.
func ClubPayload(d Draft) map[string]any {
	payload := map[string]any{
		ClubFieldNome:  strings.TrimSpace(d[ClubFieldNome]),
		ClubFieldCitta: strings.TrimSpace(d[ClubFieldCitta]),
		ClubFieldSport: strings.TrimSpace(d[ClubFieldSport]),
		ClubFieldEmail: strings.TrimSpace(d[ClubFieldEmail]),
	}
	for _, field := range []string{ClubFieldTelefono, ClubFieldReferente, ClubFieldLogoURL, ClubFieldNote} {
		if v := strings.TrimSpace(d[field]); v != "" {
			payload[field] = v
		}
	}
	return payload
}
