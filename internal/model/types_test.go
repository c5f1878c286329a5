package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleForm() FormModel {
	return FormModel{
		ID:       "curator",
		Endpoint: "/curator",
		Method:   "POST",
		Sections: []Section{
			{
				Name: "playlists",
				Groups: []Group{
					{Key: "a", Index: 0, Fields: []Field{{Name: "playlists.0.link"}, {Name: "playlists.0.cost"}}},
					{Key: "b", Index: 1, Fields: []Field{{Name: "playlists.1.link"}, {Name: "playlists.1.cost"}}},
				},
			},
			{
				Name:   "user",
				Fields: []Field{{Name: "name"}, {Name: "email"}},
			},
		},
	}
}

func TestFormModelFieldsOrder(t *testing.T) {
	var got []string
	for _, field := range sampleForm().Fields() {
		got = append(got, field.Name)
	}
	want := []string{"playlists.0.link", "playlists.0.cost", "playlists.1.link", "playlists.1.cost", "name", "email"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestFormModelLookup(t *testing.T) {
	form := sampleForm()
	if _, ok := form.Field("playlists.1.cost"); !ok {
		t.Fatalf("expected grouped field lookup to succeed")
	}
	if _, ok := form.Field("missing"); ok {
		t.Fatalf("expected missing field lookup to fail")
	}
	if section, ok := form.Section("user"); !ok || len(section.Fields) != 2 {
		t.Fatalf("expected user section with two fields, got %+v", section)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(sampleForm()); err != nil {
		t.Fatalf("validate: %v", err)
	}

	missingID := sampleForm()
	missingID.ID = ""
	if err := Validate(missingID); err == nil {
		t.Fatalf("expected missing id error")
	}

	duplicate := sampleForm()
	duplicate.Sections[1].Fields = append(duplicate.Sections[1].Fields, Field{Name: "name"})
	if err := Validate(duplicate); err == nil {
		t.Fatalf("expected duplicate field error")
	}
}
