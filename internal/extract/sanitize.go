package extract

import "strings"

// pdfArtifacts removes characters known to corrupt the fixed-width profile
// export when they survive whole-document PDF extraction: percent signs are
// dropped, colons become spaces. Only the whole-document PDF decoder applies
// this; the page-by-page decoder and the word-processor path return text as
// decoded.
var pdfArtifacts = strings.NewReplacer("%", "", ":", " ")

func sanitizePDFText(s string) string {
	return pdfArtifacts.Replace(s)
}
