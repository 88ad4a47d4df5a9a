// Package document turns schedule files into the positioned pages the
// schedule parser consumes.
package document

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/schedule-cli/internal/config"
	"github.com/sells-group/schedule-cli/internal/model"
)

// Provider names.
const (
	ProviderAuto      = "auto"
	ProviderPdfToText = "pdftotext"
	ProviderXLSX      = "xlsx"
	ProviderJSON      = "json"
)

// Loader extracts the pages of a schedule document.
type Loader interface {
	Load(ctx context.Context, path string) ([]model.Page, error)
}

// NewLoader creates a Loader based on config. The auto provider picks one
// from the file extension of path.
func NewLoader(cfg config.SourceConfig, path string, log *zap.Logger) (Loader, error) {
	if log == nil {
		log = zap.L()
	}

	provider := cfg.Provider
	if provider == ProviderAuto || provider == "" {
		var err error
		if provider, err = providerFor(path); err != nil {
			return nil, err
		}
	}

	switch provider {
	case ProviderPdfToText:
		return NewPdfToText(cfg.PdfToTextPath, cfg.MergeGap, log), nil
	case ProviderXLSX:
		return &Workbook{}, nil
	case ProviderJSON:
		return &Dump{}, nil
	default:
		return nil, eris.Errorf("document: unknown provider %q", provider)
	}
}

func providerFor(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return ProviderPdfToText, nil
	case ".xlsx":
		return ProviderXLSX, nil
	case ".json":
		return ProviderJSON, nil
	default:
		return "", eris.Errorf("document: cannot infer provider for %q", filepath.Base(path))
	}
}
