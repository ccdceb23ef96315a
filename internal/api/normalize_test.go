package api

import (
	"testing"
)

// TestNormalizeList tests tolerance of both list endpoint shapes
func TestNormalizeList(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		key     string
		wantLen int
		wantErr bool
	}{
		{"Bare array", `[{"id": 1}]`, "clubs", 1, false},
		{"Wrapped object", `{"clubs": [{"id": 1}]}`, "clubs", 1, false},
		{"Empty bare array", `[]`, "clubs", 0, false},
		{"Wrapped empty array", `{"clubs": []}`, "clubs", 0, false},
		{"Wrapped missing key degrades to empty", `{"total": 0}`, "clubs", 0, false},
		{"Multiple rows wrapped", `{"contracts": [{"id": 1}, {"id": 2}, {"id": 3}]}`, "contracts", 3, false},
		{"Scalar body rejected", `42`, "clubs", 0, true},
		{"Malformed JSON rejected", `{"clubs": [`, "clubs", 0, true},
		{"Wrapped key of wrong type rejected", `{"clubs": {"id": 1}}`, "clubs", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := NormalizeList[Club]([]byte(tt.body), tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeList() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if len(items) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(items), tt.wantLen)
			}
		})
	}
}

// TestNormalizeListBothShapesSameResult checks the two observed shapes of the
// same payload normalize identically.
func TestNormalizeListBothShapesSameResult(t *testing.T) {
	bare, err := NormalizeList[Club]([]byte(`[{"id": 1}]`), "clubs")
	if err != nil {
		t.Fatalf("bare shape: %v", err)
	}
	wrapped, err := NormalizeList[Club]([]byte(`{"clubs": [{"id": 1}]}`), "clubs")
	if err != nil {
		t.Fatalf("wrapped shape: %v", err)
	}

	if len(bare) != 1 || len(wrapped) != 1 {
		t.Fatalf("lengths = %d and %d, want 1 and 1", len(bare), len(wrapped))
	}
	if bare[0].ID != wrapped[0].ID {
		t.Errorf("decoded rows differ: %+v vs %+v", bare[0], wrapped[0])
	}
}
