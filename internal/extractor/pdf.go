// Package extractor produces raw page text for the parsing pipeline. It is
// the OCR/PDF collaborator seam: everything downstream consumes plain text
// in page order and makes no assumption beyond line breaks.
package extractor

import (
	"os/exec"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
)

// ExtractText reads a PDF file and returns the text content of each page, in
// page order. Text-layer extraction is tried first; image-based statements
// fall back to pdftotext and then to Tesseract OCR. Garbage output (custom
// font encodings that decode to noise) is never returned.
func ExtractText(filePath string) ([]string, error) {
	pages, libErr := extractWithLibrary(filePath)
	if libErr == nil && isReadableText(pages) {
		return pages, nil
	}

	popplerPages, popplerErr := extractWithPdftotext(filePath)
	if popplerErr == nil && isReadableText(popplerPages) {
		return popplerPages, nil
	}

	ocrPages, ocrErr := ExtractTextOCR(filePath)
	if ocrErr == nil && isReadableText(ocrPages) {
		return ocrPages, nil
	}

	if libErr != nil {
		return nil, errors.Wrap(libErr, "pdf text extraction failed; the document may be image-based or use undecodable font encodings")
	}
	return nil, errors.New("no readable text could be extracted from the pdf")
}

// extractWithLibrary uses the structured PDF reader; best layout fidelity
// when the document has a proper text layer.
func extractWithLibrary(filePath string) ([]string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", filePath)
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := pageText(page)
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) != "" {
			pages = append(pages, text)
		}
	}
	if len(pages) == 0 {
		return nil, errors.New("document has no extractable text layer")
	}
	return pages, nil
}

// pageText reassembles rows from positioned text fragments, preserving the
// top-to-bottom, left-to-right reading order of a tabular statement.
func pageText(page pdf.Page) (string, error) {
	rows, err := page.GetTextByRow()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, row := range rows {
		var cells []string
		for _, word := range row.Content {
			if w := strings.TrimSpace(word.S); w != "" {
				cells = append(cells, w)
			}
		}
		if len(cells) > 0 {
			b.WriteString(strings.Join(cells, " "))
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

// extractWithPdftotext shells out to poppler-utils, which copes with many
// encodings the pure-Go reader cannot.
func extractWithPdftotext(filePath string) ([]string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return nil, errors.Wrap(err, "pdftotext not available (install poppler-utils)")
	}
	// -layout keeps column alignment, which the line classifier relies on
	out, err := exec.Command("pdftotext", "-layout", filePath, "-").Output()
	if err != nil {
		return nil, errors.Wrap(err, "pdftotext failed")
	}
	// pdftotext separates pages with form feeds
	var pages []string
	for _, page := range strings.Split(string(out), "\f") {
		if strings.TrimSpace(page) != "" {
			pages = append(pages, page)
		}
	}
	if len(pages) == 0 {
		return nil, errors.New("pdftotext produced no text")
	}
	return pages, nil
}

// statementWords appear in virtually every bank statement this pipeline
// handles. Extracted text containing none of them is treated as garbage.
var statementWords = []string{
	"bank", "account", "balance", "date", "statement", "narration",
	"description", "withdrawal", "deposit", "transaction", "branch",
	"ifsc", "upi", "neft", "imps", "cheque", "page", "period",
}

// isReadableText guards against identity-encoded fonts that decode into
// noise: the text must be mostly plain ASCII and contain at least one word a
// statement would carry.
func isReadableText(pages []string) bool {
	if len(pages) == 0 {
		return false
	}
	if textQuality(pages) < 0.85 {
		return false
	}
	combined := strings.ToLower(strings.Join(pages, " "))
	for _, word := range statementWords {
		if strings.Contains(combined, word) {
			return true
		}
	}
	return false
}

// textQuality returns the ratio of readable characters (ASCII letters,
// digits, whitespace, statement punctuation, rupee sign) to total.
func textQuality(pages []string) float64 {
	total, readable := 0, 0
	for _, page := range pages {
		for _, r := range page {
			total++
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
				readable++
			case unicode.IsSpace(r):
				readable++
			case strings.ContainsRune(`.,-/:;()'"@#%&*+=|₹`, r):
				readable++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}
