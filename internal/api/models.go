package api

// Club is a sports club record as returned by the backend.
type Club struct {
	ID        int64  `json:"id"`
	Nome      string `json:"nome"`
	Citta     string `json:"citta"`
	Sport     string `json:"sport"`
	Email     string `json:"email"`
	Telefono  string `json:"telefono,omitempty"`
	Referente string `json:"referente,omitempty"`
	LogoURL   string `json:"logo_url,omitempty"`
	Note      string `json:"note,omitempty"`
}

// Sponsor is a sponsor company record.
type Sponsor struct {
	ID       int64  `json:"id"`
	Nome     string `json:"nome"`
	Settore  string `json:"settore,omitempty"`
	Email    string `json:"email"`
	Telefono string `json:"telefono,omitempty"`
	LogoURL  string `json:"logo_url,omitempty"`
}

// Contract is a sponsorship contract record. Monetary amounts are integer
// euro cents, mirroring internal/money.
type Contract struct {
	ID            int64   `json:"id"`
	Titolo        string  `json:"titolo"`
	ClubID        int64   `json:"club_id"`
	SponsorID     int64   `json:"sponsor_id"`
	Stato         string  `json:"stato"` // bozza, attivo, scaduto, disdetto
	DataInizio    string  `json:"data_inizio"`
	DataFine      string  `json:"data_fine,omitempty"`
	DurataMesi    int     `json:"durata_mesi,omitempty"`
	AliquotaIVA   float64 `json:"aliquota_iva,omitempty"`
	SubtotalCents int64   `json:"subtotale_cents"`
	TaxCents      int64   `json:"iva_cents"`
	TotalCents    int64   `json:"totale_cents"`
	ContrattoURL  string  `json:"contratto_url,omitempty"`
}

// ChecklistTask is a deliverable attached to a contract.
type ChecklistTask struct {
	ID          int64  `json:"id"`
	ContractID  int64  `json:"contract_id"`
	Titolo      string `json:"titolo"`
	Descrizione string `json:"descrizione"`
	AssegnatoA  string `json:"assegnato_a"` // club or sponsor
	Scadenza    string `json:"scadenza,omitempty"`
	Completato  bool   `json:"completato"`
}

// DashboardStats is the aggregate counters shown on the dashboard header.
// This endpoint is auxiliary: when it fails, pages degrade to zero counters
// rather than failing the whole view.
type DashboardStats struct {
	ClubCount       int   `json:"club_count"`
	SponsorCount    int   `json:"sponsor_count"`
	ActiveContracts int   `json:"contratti_attivi"`
	TotalValueCents int64 `json:"valore_totale_cents"`
}

// UploadResult is the response of the file upload endpoint, referenced in a
// subsequent create/update payload (upload-then-reference).
type UploadResult struct {
	FileURL  string `json:"file_url"`
	FileSize int64  `json:"file_size"`
	FileType string `json:"file_type"`
}
