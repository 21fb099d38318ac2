package render

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

func verifyPDF(path string) (err error) {
	// the pdf reader panics on some malformed input instead of erroring
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: failed to parse '%v': %v", ErrInvalidArtifact, path, r)
		}
	}()
	f, r, err := pdf.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	defer f.Close()
	if r.NumPage() < 1 {
		return fmt.Errorf("%w: '%v' has no pages", ErrInvalidArtifact, path)
	}
	return nil
}
