package form

import (
	"testing"
)

// threeStepWizard builds a wizard where each step requires one field.
func threeStepWizard() *Wizard {
	steps := []Step{
		{Title: "one", Validate: func(d Draft) FieldErrors {
			errs := FieldErrors{}
			requireField(d, "a", "campo obbligatorio", errs)
			return errs
		}},
		{Title: "two", Validate: func(d Draft) FieldErrors {
			errs := FieldErrors{}
			requireField(d, "b", "campo obbligatorio", errs)
			return errs
		}},
		{Title: "three", Validate: func(d Draft) FieldErrors {
			return FieldErrors{}
		}},
	}
	return NewWizard(steps, Draft{"a": "", "b": ""})
}

// TestNextBlockedByValidation checks a failing step does not advance and
// surfaces errors for exactly the invalid fields.
func TestNextBlockedByValidation(t *testing.T) {
	w := threeStepWizard()

	if w.Next() {
		t.Fatal("Next() succeeded with an empty required field")
	}
	if w.Current() != 0 {
		t.Errorf("Current() = %d, want 0", w.Current())
	}
	if len(w.Errors()) != 1 {
		t.Fatalf("Errors() has %d entries, want 1: %v", len(w.Errors()), w.Errors())
	}
	if _, ok := w.Errors()["a"]; !ok {
		t.Errorf("expected error for field %q, got %v", "a", w.Errors())
	}
}

// TestNextAdvancesWhenValid checks the happy forward path.
func TestNextAdvancesWhenValid(t *testing.T) {
	w := threeStepWizard()
	w.SetField("a", "valore")

	if !w.Next() {
		t.Fatalf("Next() failed: %v", w.Errors())
	}
	if w.Current() != 1 {
		t.Errorf("Current() = %d, want 1", w.Current())
	}
	if len(w.Errors()) != 0 {
		t.Errorf("Errors() not cleared after successful Next: %v", w.Errors())
	}
}

// TestNextClampsAtLastStep checks Next on the final step stays put.
func TestNextClampsAtLastStep(t *testing.T) {
	w := threeStepWizard()
	w.SetField("a", "x")
	w.Next()
	w.SetField("b", "y")
	w.Next()

	if !w.OnLastStep() {
		t.Fatalf("expected last step, at %d", w.Current())
	}
	if !w.Next() {
		t.Fatal("Next() on valid last step should succeed")
	}
	if w.Current() != 2 {
		t.Errorf("Current() = %d, want clamped 2", w.Current())
	}
}

// TestPrevNeverValidates checks backward navigation ignores validity.
func TestPrevNeverValidates(t *testing.T) {
	w := threeStepWizard()
	w.SetField("a", "x")
	w.Next()

	// Break the already-validated first step, then walk back.
	w.SetField("a", "")
	w.Prev()
	if w.Current() != 0 {
		t.Errorf("Current() = %d, want 0", w.Current())
	}

	w.Prev() // clamped at 0
	if w.Current() != 0 {
		t.Errorf("Current() = %d after clamped Prev, want 0", w.Current())
	}
}

// TestGoToRestriction checks jumps cannot skip unvalidated steps.
func TestGoToRestriction(t *testing.T) {
	w := threeStepWizard()

	if w.GoTo(2) {
		t.Error("GoTo(2) succeeded with nothing validated")
	}
	if w.Current() != 0 {
		t.Errorf("Current() = %d after refused jump, want 0", w.Current())
	}

	// Validate step 0, which opens step 1 but not step 2.
	w.SetField("a", "x")
	w.Next()

	if w.GoTo(2) {
		t.Error("GoTo(2) succeeded past unvalidated step 1")
	}
	if !w.GoTo(0) {
		t.Error("GoTo(0) refused for an already-validated step")
	}
	if !w.GoTo(1) {
		t.Error("GoTo(1) refused for the step right after the validated one")
	}

	if w.GoTo(-1) || w.GoTo(3) {
		t.Error("GoTo accepted an out-of-range index")
	}
}

// TestSetFieldClearsOnlyThatError checks optimistic error clearing.
func TestSetFieldClearsOnlyThatError(t *testing.T) {
	steps := []Step{
		{Title: "both", Validate: func(d Draft) FieldErrors {
			errs := FieldErrors{}
			requireField(d, "a", "manca a", errs)
			requireField(d, "b", "manca b", errs)
			return errs
		}},
	}
	w := NewWizard(steps, Draft{"a": "", "b": ""})

	w.Next()
	if len(w.Errors()) != 2 {
		t.Fatalf("Errors() has %d entries, want 2", len(w.Errors()))
	}

	w.SetField("a", "x")
	if _, ok := w.Errors()["a"]; ok {
		t.Error("error for edited field not cleared")
	}
	if _, ok := w.Errors()["b"]; !ok {
		t.Error("error for untouched field was cleared")
	}

	// Clearing is optimistic: emptying the field again does not re-add the
	// error until the next validation pass.
	w.SetField("a", "")
	if _, ok := w.Errors()["a"]; ok {
		t.Error("SetField re-validated instead of clearing optimistically")
	}
}

// TestValidateAllUnions checks the pre-submit sweep covers every step.
func TestValidateAllUnions(t *testing.T) {
	w := threeStepWizard()
	w.SetField("a", "x")
	w.Next()
	w.SetField("b", "y")
	w.Next()

	// Backtrack and silently break step 0.
	w.GoTo(0)
	w.SetField("a", "")

	all := w.ValidateAll()
	if len(all) != 1 {
		t.Fatalf("ValidateAll() has %d entries, want 1: %v", len(all), all)
	}
	if _, ok := all["a"]; !ok {
		t.Errorf("ValidateAll() missing error for broken field: %v", all)
	}

	w.SetField("a", "x")
	if got := w.ValidateAll(); len(got) != 0 {
		t.Errorf("ValidateAll() = %v on a fully valid draft, want empty", got)
	}
}

// TestNewWizardPanics checks precondition violations panic.
func TestNewWizardPanics(t *testing.T) {
	assertPanics := func(name string, fn func()) {
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		fn()
	}

	assertPanics("no steps", func() { NewWizard(nil, Draft{}) })
	assertPanics("nil validator", func() {
		NewWizard([]Step{{Title: "broken"}}, Draft{})
	})
}

// TestDraftClone checks clones are independent.
func TestDraftClone(t *testing.T) {
	d := Draft{"a": "1"}
	c := d.Clone()
	c["a"] = "2"
	if d["a"] != "1" {
		t.Errorf("Clone() shares storage with original")
	}
}
