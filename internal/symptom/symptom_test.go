package symptom

import "testing"

func TestToggle(t *testing.T) {
	set := NewSet()

	if !set.Toggle(Bleeding) {
		t.Error("first toggle should add the symptom")
	}
	if !set.Has(Bleeding) {
		t.Error("Bleeding should be present after toggle")
	}

	if set.Toggle(Bleeding) {
		t.Error("second toggle should remove the symptom")
	}
	if set.Has(Bleeding) {
		t.Error("Bleeding should be absent after second toggle")
	}
}

func TestToggle_UnknownSymptom(t *testing.T) {
	set := NewSet()
	if set.Toggle(Symptom("fever")) {
		t.Error("unknown symptom should not be added")
	}
	if !set.Empty() {
		t.Error("set should stay empty after unknown toggle")
	}
}

func TestList_Order(t *testing.T) {
	set := NewSet()
	set.Toggle(RapidGrowth)
	set.Toggle(Itching)

	got := set.List()
	want := []Symptom{Itching, RapidGrowth}
	if len(got) != len(want) {
		t.Fatalf("List() returned %d symptoms, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestClone_Independence(t *testing.T) {
	set := NewSet()
	set.Toggle(Itching)

	clone := set.Clone()
	clone.Toggle(Bleeding)

	if set.Has(Bleeding) {
		t.Error("mutating the clone should not affect the original")
	}
	if !clone.Has(Itching) {
		t.Error("clone should carry the original members")
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		s    Symptom
		want bool
	}{
		{Itching, true},
		{Bleeding, true},
		{RapidGrowth, true},
		{"", false},
		{"swelling", false},
	}

	for _, tt := range tests {
		if got := tt.s.Valid(); got != tt.want {
			t.Errorf("Symptom(%q).Valid() = %v, want %v", tt.s, got, tt.want)
		}
	}
}
