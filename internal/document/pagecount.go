package document

import (
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rotisserie/eris"
)

// PageCount returns the number of pages in a PDF.
func PageCount(pdfPath string) (int, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return 0, eris.Wrap(err, "document: open pdf")
	}
	defer f.Close() //nolint:errcheck

	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed

	n, err := api.PageCount(f, conf)
	if err != nil {
		return 0, eris.Wrapf(err, "document: count pages of %s", pdfPath)
	}
	return n, nil
}
