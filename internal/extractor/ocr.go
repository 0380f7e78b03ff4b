package extractor

import (
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// ExtractTextOCR rasterizes PDF pages and runs Tesseract over each image.
// This is the path for scanned statements with no text layer.
// Requires pdftoppm (poppler-utils) and tesseract on PATH.
func ExtractTextOCR(filePath string) ([]string, error) {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return nil, errors.Wrap(err, "pdftoppm not available (install poppler-utils)")
	}
	if _, err := exec.LookPath("tesseract"); err != nil {
		return nil, errors.Wrap(err, "tesseract not available (install tesseract-ocr)")
	}

	tmpDir, err := os.MkdirTemp("", "ocr-pages-*")
	if err != nil {
		return nil, errors.Wrap(err, "create temp dir")
	}
	defer os.RemoveAll(tmpDir)

	// 300 DPI gives Tesseract enough resolution for the small statement fonts
	imgPrefix := filepath.Join(tmpDir, "page")
	cmd := exec.Command("pdftoppm", "-r", "300", "-png", filePath, imgPrefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, errors.Wrapf(err, "pdftoppm failed: %s", string(out))
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return nil, errors.Wrap(err, "read temp dir")
	}
	var images []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".png") {
			images = append(images, filepath.Join(tmpDir, e.Name()))
		}
	}
	sort.Strings(images)
	if len(images) == 0 {
		return nil, errors.New("pdftoppm produced no page images")
	}

	var pages []string
	for _, img := range images {
		outBase := strings.TrimSuffix(img, ".png") + "-ocr"
		// PSM 4: single column of variable-size text, the usual statement shape
		cmd := exec.Command("tesseract", img, outBase, "-l", "eng", "--psm", "4")
		if _, err := cmd.CombinedOutput(); err != nil {
			// a failed page is skipped; remaining pages may still OCR fine
			continue
		}
		data, err := os.ReadFile(outBase + ".txt")
		if err != nil {
			continue
		}
		if text := strings.TrimSpace(string(data)); text != "" {
			pages = append(pages, text)
		}
	}
	if len(pages) == 0 {
		return nil, errors.Errorf("tesseract produced no text from %d page images", len(images))
	}
	return pages, nil
}
