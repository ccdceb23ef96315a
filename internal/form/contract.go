package form

import (
	"strconv"
	"strings"

	"github.com/sponsorhub/sponsorhub/internal/money"
)

// Contract draft fields. The contract wizard spans three steps: parties,
// pricing, and documents. All steps read and write this one flat draft.
const (
	ContractFieldTitolo       = "titolo"
	ContractFieldClubID       = "club_id"
	ContractFieldSponsorID    = "sponsor_id"
	ContractFieldDataInizio   = "data_inizio"
	ContractFieldDataFine     = "data_fine"
	ContractFieldDurataMesi   = "durata_mesi"
	ContractFieldPrezzoBase   = "prezzo_base"
	ContractFieldAliquotaIVA  = "aliquota_iva"
	ContractFieldAddonLED     = "addon_led"
	ContractFieldAddonMaglia  = "addon_maglia"
	ContractFieldAddonHosp    = "addon_hospitality"
	ContractFieldContrattoURL = "contratto_url"
	ContractFieldNote         = "note"
)

// DefaultVATRate is the standard Italian VAT rate preseeded into new drafts.
const DefaultVATRate = "22"

// NewContractDraft seeds a contract draft for creation.
func NewContractDraft() Draft {
	return Draft{
		ContractFieldTitolo:       "",
		ContractFieldClubID:       "",
		ContractFieldSponsorID:    "",
		ContractFieldDataInizio:   "",
		ContractFieldDataFine:     "",
		ContractFieldDurataMesi:   "12",
		ContractFieldPrezzoBase:   "",
		ContractFieldAliquotaIVA:  DefaultVATRate,
		ContractFieldAddonLED:     "",
		ContractFieldAddonMaglia:  "",
		ContractFieldAddonHosp:    "",
		ContractFieldContrattoURL: "",
		ContractFieldNote:         "",
	}
}

func validateContractParties(d Draft) FieldErrors {
	errs := FieldErrors{}
	requireField(d, ContractFieldTitolo, "Inserisci il titolo del contratto", errs)
	requireField(d, ContractFieldClubID, "Seleziona un club", errs)
	requireField(d, ContractFieldSponsorID, "Seleziona uno sponsor", errs)
	requireField(d, ContractFieldDataInizio, "Inserisci la data di inizio", errs)
	checkDate(d, ContractFieldDataInizio, "Data di inizio non valida", errs)
	checkDate(d, ContractFieldDataFine, "Data di fine non valida", errs)
	return errs
}

func validateContractPricing(d Draft) FieldErrors {
	errs := FieldErrors{}
	requireField(d, ContractFieldPrezzoBase, "Inserisci il prezzo base", errs)

	if _, ok := errs[ContractFieldPrezzoBase]; !ok {
		if money.ParseAmount(d[ContractFieldPrezzoBase]) == 0 {
			errs[ContractFieldPrezzoBase] = "Il prezzo base deve essere maggiore di zero"
		}
	}

	if v := strings.TrimSpace(d[ContractFieldDurataMesi]); v != "" {
		if months, err := strconv.Atoi(v); err != nil || months < 1 || months > 120 {
			errs[ContractFieldDurataMesi] = "La durata deve essere tra 1 e 120 mesi"
		}
	}

	if v := strings.TrimSpace(d[ContractFieldAliquotaIVA]); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err != nil || rate < 0 || rate > 100 {
			errs[ContractFieldAliquotaIVA] = "Aliquota IVA non valida (0-100)"
		}
	}

	return errs
}

func validateContractDocuments(d Draft) FieldErrors {
	// Documents and notes are optional; nothing can fail here today.
	return FieldErrors{}
}

// ContractSteps returns the three-step definition for the contract wizard.
func ContractSteps() []Step {
	return []Step{
		{Title: "Parti e periodo", Validate: validateContractParties},
		{Title: "Corrispettivi", Validate: validateContractPricing},
		{Title: "Documenti e note", Validate: validateContractDocuments},
	}
}

// ContractTotals derives the live pricing preview for a contract draft.
// It is called on every keystroke of the pricing step.
func ContractTotals(d Draft) money.Totals {
	var items []money.LineItem
	for _, f := range []struct {
		field, label string
	}{
		{ContractFieldAddonLED, "LED"},
		{ContractFieldAddonMaglia, "Maglia"},
		{ContractFieldAddonHosp, "Hospitality"},
	} {
		if strings.TrimSpace(d[f.field]) != "" {
			items = append(items, money.LineItem{Label: f.label, PriceCents: money.ParseAmount(d[f.field])})
		}
	}

	rate, err := strconv.ParseFloat(strings.TrimSpace(d[ContractFieldAliquotaIVA]), 64)
	if err != nil {
		rate = 0
	}

	return money.ComputeTotals(money.ParseAmount(d[ContractFieldPrezzoBase]), items, rate)
}

// ContractPayload builds the create/update request body from a valid draft.
// Monetary fields are sent as integer cents; optional fields are omitted when
// empty rather than sent as empty strings.
func ContractPayload(d Draft) map[string]any {
	totals := ContractTotals(d)

	payload := map[string]any{
		ContractFieldTitolo:     strings.TrimSpace(d[ContractFieldTitolo]),
		ContractFieldClubID:     strings.TrimSpace(d[ContractFieldClubID]),
		ContractFieldSponsorID:  strings.TrimSpace(d[ContractFieldSponsorID]),
		ContractFieldDataInizio: strings.TrimSpace(d[ContractFieldDataInizio]),
		"prezzo_base_cents":     money.ParseAmount(d[ContractFieldPrezzoBase]),
		"subtotale_cents":       totals.SubtotalCents,
		"iva_cents":             totals.TaxCents,
		"totale_cents":          totals.TotalCents,
	}

	if v := strings.TrimSpace(d[ContractFieldDataFine]); v != "" {
		payload[ContractFieldDataFine] = v
	}
	if v := strings.TrimSpace(d[ContractFieldDurataMesi]); v != "" {
		if months, err := strconv.Atoi(v); err == nil {
			payload[ContractFieldDurataMesi] = months
		}
	}
	if v := strings.TrimSpace(d[ContractFieldAliquotaIVA]); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil {
			payload[ContractFieldAliquotaIVA] = rate
		}
	}
	for _, pair := range [][2]string{
		{ContractFieldAddonLED, "addon_led_cents"},
		{ContractFieldAddonMaglia, "addon_maglia_cents"},
		{ContractFieldAddonHosp, "addon_hospitality_cents"},
	} {
		if v := strings.TrimSpace(d[pair[0]]); v != "" {
			payload[pair[1]] = money.ParseAmount(v)
		}
	}
	if v := strings.TrimSpace(d[ContractFieldContrattoURL]); v != "" {
		payload[ContractFieldContrattoURL] = v
	}
	if v := strings.TrimSpace(d[ContractFieldNote]); v != "" {
		payload[ContractFieldNote] = v
	}

	return payload
}
