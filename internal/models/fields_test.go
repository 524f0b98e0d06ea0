package models

import (
	"reflect"
	"testing"
)

func TestFields_Empty(t *testing.T) {
	tests := []struct {
		name   string
		fields *Fields
		want   bool
	}{
		{"zero value", &Fields{}, true},
		{"name only", &Fields{Name: "Jane Doe"}, false},
		{"email only", &Fields{Email: "a@b.com"}, false},
		{"skills only", &Fields{Skills: []string{"python"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fields.Empty(); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFields_HasHeadline(t *testing.T) {
	if (&Fields{Name: "Jane Doe"}).HasHeadline() {
		t.Error("name alone is not a headline field")
	}
	if !(&Fields{MobileNumber: "+14155550132"}).HasHeadline() {
		t.Error("phone is a headline field")
	}
	if !(&Fields{Certifications: []string{"Coursera"}}).HasHeadline() {
		t.Error("certifications are headline fields")
	}
}

func TestFields_FillFrom(t *testing.T) {
	f := &Fields{Email: "jane@mail.com", Skills: []string{"python"}}
	f.FillFrom(&Fields{
		Name:   "Jane Doe",
		Email:  "other@mail.com",
		Skills: []string{"java"},
	})
	if f.Name != "Jane Doe" {
		t.Errorf("Name = %q, want filled", f.Name)
	}
	if f.Email != "jane@mail.com" {
		t.Errorf("Email = %q, existing value must win", f.Email)
	}
	if !reflect.DeepEqual(f.Skills, []string{"python"}) {
		t.Errorf("Skills = %v, existing value must win", f.Skills)
	}
}

func TestFields_FillFromNil(t *testing.T) {
	f := &Fields{Email: "jane@mail.com"}
	f.FillFrom(nil)
	if f.Email != "jane@mail.com" {
		t.Errorf("Email = %q", f.Email)
	}
}
