package parser

import (
	"reflect"
	"testing"
)

func TestParse_emptyText(t *testing.T) {
	p := NewParser(DefaultVocabulary())
	f := p.Parse("")
	if !f.Empty() {
		t.Errorf("Parse(\"\") = %+v, want empty", f)
	}
}

func TestParse_email(t *testing.T) {
	p := NewParser(DefaultVocabulary())
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain", "Contact jane.doe@mail.com anytime", "jane.doe@mail.com"},
		{"first of two", "a@b.com then c@d.org", "a@b.com"},
		{"uppercase domain", "X@EXAMPLE.COM", "X@EXAMPLE.COM"},
		{"none", "no address here", ""},
		{"tld too short", "x@y.z", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Parse(tt.text).Email; got != tt.want {
				t.Errorf("Email = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_phone(t *testing.T) {
	p := NewParser(DefaultVocabulary())
	tests := []struct {
		name string
		text string
		want string
	}{
		{"international with spaces", "Phone +1 415 555 0132", "+14155550132"},
		{"plain digits", "call 9876543210 today", "9876543210"},
		{"leading zero rejected as start", "ref 0123 then 9876543210", "9876543210"},
		{"too short", "pin 12345", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Parse(tt.text).MobileNumber; got != tt.want {
				t.Errorf("MobileNumber = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_name(t *testing.T) {
	p := NewParser(DefaultVocabulary())
	tests := []struct {
		name string
		text string
		want string
	}{
		{"two tokens", "Jane Doe\njane@mail.com", "Jane Doe"},
		{"four tokens", "Jane Mary van Doe\n", "Jane Mary van Doe"},
		{"five tokens rejected", "curriculum vitae of Jane Mary Doe\n", ""},
		{"leading blank lines skipped", "\n\n  Jane Doe  \n", "Jane Doe"},
		{"single token", "Jane\n", "Jane"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Parse(tt.text).Name; got != tt.want {
				t.Errorf("Name = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_skillsWholeWord(t *testing.T) {
	p := NewParser(DefaultVocabulary())
	f := p.Parse("Experienced Python developer")
	if !reflect.DeepEqual(f.Skills, []string{"python"}) {
		t.Errorf("Skills = %v, want [python]", f.Skills)
	}
	f = p.Parse("writes pythonic code")
	if len(f.Skills) != 0 {
		t.Errorf("Skills = %v, substring inside a word must not match", f.Skills)
	}
}

func TestParse_skillsVocabularyOrder(t *testing.T) {
	p := NewParser(DefaultVocabulary())
	// Text order is sql before java before python; output must follow the
	// vocabulary order instead.
	f := p.Parse("knows SQL, Java and Python")
	want := []string{"python", "java", "sql"}
	if !reflect.DeepEqual(f.Skills, want) {
		t.Errorf("Skills = %v, want %v", f.Skills, want)
	}
}

func TestParse_skillsMultiWordPhrase(t *testing.T) {
	p := NewParser(DefaultVocabulary())
	if f := p.Parse("worked on Computer Vision models"); !reflect.DeepEqual(f.Skills, []string{"computer vision"}) {
		t.Errorf("Skills = %v", f.Skills)
	}
	// The words present but not contiguous must not match the phrase.
	if f := p.Parse("computer graphics and machine vision"); len(f.Skills) != 0 {
		t.Errorf("Skills = %v, want none", f.Skills)
	}
}

func TestParse_projectsAndCertifications(t *testing.T) {
	p := NewParser(DefaultVocabulary())
	f := p.Parse("Built a RAG-based PDF Chatbot; certified by Coursera and IIT Kharagpur")
	wantProjects := []string{"RAG-based PDF Chatbot with LangChain & Hugging Face"}
	if !reflect.DeepEqual(f.Projects, wantProjects) {
		t.Errorf("Projects = %v, want %v", f.Projects, wantProjects)
	}
	// Output follows the certification list order, not text order.
	wantCerts := []string{"IIT Kharagpur", "Coursera"}
	if !reflect.DeepEqual(f.Certifications, wantCerts) {
		t.Errorf("Certifications = %v, want %v", f.Certifications, wantCerts)
	}
}

func TestParse_certificationsCaseSensitive(t *testing.T) {
	p := NewParser(DefaultVocabulary())
	if f := p.Parse("completed coursera course"); len(f.Certifications) != 0 {
		t.Errorf("Certifications = %v, match must be case-sensitive", f.Certifications)
	}
}

func TestParse_customVocabulary(t *testing.T) {
	vocab := Vocabulary{
		Skills: []string{"go", "rust"},
		Projects: []ProjectKeyword{
			{Keyword: "key-value store", Title: "Distributed key-value store"},
		},
		Certifications: []string{"CNCF"},
	}
	p := NewParser(vocab)
	f := p.Parse("Jane Doe\nGo and Rust, built a key-value store, CNCF certified")
	if !reflect.DeepEqual(f.Skills, []string{"go", "rust"}) {
		t.Errorf("Skills = %v", f.Skills)
	}
	if !reflect.DeepEqual(f.Projects, []string{"Distributed key-value store"}) {
		t.Errorf("Projects = %v", f.Projects)
	}
	if !reflect.DeepEqual(f.Certifications, []string{"CNCF"}) {
		t.Errorf("Certifications = %v", f.Certifications)
	}
}

func TestParse_deterministic(t *testing.T) {
	p := NewParser(DefaultVocabulary())
	text := "Jane Doe\njane.doe@mail.com\n+1 415 555 0132\nPython, SQL, Coursera"
	a := p.Parse(text)
	b := p.Parse(text)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Parse not deterministic: %+v vs %+v", a, b)
	}
}
