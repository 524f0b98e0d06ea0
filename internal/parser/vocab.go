package parser

// ProjectKeyword maps a keyword found verbatim in resume text to the full
// project title recorded on the profile.
type ProjectKeyword struct {
	Keyword string
	Title   string
}

// Vocabulary holds the fixed matching tables the parser works from. It is
// treated as immutable; parsers never modify it, and the slices also fix the
// order of the parser's output.
type Vocabulary struct {
	// Skills are matched case-insensitively as whole words (multi-word
	// entries as contiguous phrases). Matched entries are emitted verbatim,
	// in vocabulary order.
	Skills []string

	// Projects are matched by case-sensitive substring on the keyword.
	Projects []ProjectKeyword

	// Certifications are matched by case-sensitive substring and emitted
	// verbatim.
	Certifications []string
}

// DefaultVocabulary returns the institutional matching tables used in
// production. Tests may substitute their own Vocabulary.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Skills: []string{
			"python", "java", "javascript", "sql", "html", "css", "c++", "react",
			"node.js", "mongodb", "mysql", "php", "angular", "vue", "django",
			"flask", "tensorflow", "pytorch", "scikit-learn", "pandas", "numpy",
			"opencv", "computer vision", "nlp", "gan", "predictive analysis",
			"hugging face", "aws", "ec2", "s3", "langchain", "faiss",
		},
		Projects: []ProjectKeyword{
			{Keyword: "AI-Powered Placement ERP System", Title: "AI-Powered Placement ERP System with Flask & MySQL"},
			{Keyword: "RAG-based PDF Chatbot", Title: "RAG-based PDF Chatbot with LangChain & Hugging Face"},
		},
		Certifications: []string{
			"IIT Kharagpur", "YHILLS", "Coursera", "Forage", "IEEE",
		},
	}
}
