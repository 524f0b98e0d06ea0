package models

import "testing"

func TestMerge_storedValueWins(t *testing.T) {
	stored := Profile{"phone": String("555-0100")}
	mapped := Profile{"phone": String("555-9999"), "email": String("a@b.com")}

	got := Merge(stored, mapped)

	if v := got["phone"]; v == nil || *v != "555-0100" {
		t.Errorf("phone = %v, stored value must be kept", deref(v))
	}
	if v := got["email"]; v == nil || *v != "a@b.com" {
		t.Errorf("email = %v, empty stored field must adopt mapped value", deref(v))
	}
}

func TestMerge_fillsNilAndEmptyStored(t *testing.T) {
	stored := Profile{
		"first_name": nil,
		"last_name":  String(""),
	}
	mapped := Profile{
		"first_name": String("Jane"),
		"last_name":  String("Doe"),
	}
	got := Merge(stored, mapped)
	if v := got["first_name"]; v == nil || *v != "Jane" {
		t.Errorf("first_name = %v", deref(v))
	}
	if v := got["last_name"]; v == nil || *v != "Doe" {
		t.Errorf("last_name = %v", deref(v))
	}
}

func TestMerge_ignoresEmptyMappedValues(t *testing.T) {
	stored := Profile{"hobbies": nil}
	mapped := Profile{"hobbies": String(""), "department": nil}
	got := Merge(stored, mapped)
	if got["hobbies"] != nil {
		t.Errorf("hobbies = %v, empty mapped value must not be adopted", deref(got["hobbies"]))
	}
	if got["department"] != nil {
		t.Errorf("department = %v, nil mapped value must not be adopted", deref(got["department"]))
	}
}

func TestMerge_unmappedKeysUntouched(t *testing.T) {
	stored := Profile{"roll_no": String("B-117"), "sem1": String("8.9")}
	got := Merge(stored, Profile{"email": String("a@b.com")})
	if v := got["roll_no"]; v == nil || *v != "B-117" {
		t.Errorf("roll_no = %v", deref(v))
	}
	if v := got["sem1"]; v == nil || *v != "8.9" {
		t.Errorf("sem1 = %v", deref(v))
	}
}

func TestMerge_doesNotMutateArguments(t *testing.T) {
	stored := Profile{"email": nil}
	mapped := Profile{"email": String("a@b.com")}
	_ = Merge(stored, mapped)
	if stored["email"] != nil {
		t.Error("Merge mutated stored profile")
	}
}

func TestProfile_Clone(t *testing.T) {
	p := Profile{"email": String("a@b.com"), "hobbies": nil}
	c := p.Clone()
	*c["email"] = "changed"
	if *p["email"] != "a@b.com" {
		t.Error("Clone shares value pointers with original")
	}
	if _, ok := c["hobbies"]; !ok {
		t.Error("Clone dropped nil-valued key")
	}
}

func deref(v *string) string {
	if v == nil {
		return "<nil>"
	}
	return *v
}
