package document

import (
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"math"
	"os/exec"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/sells-group/schedule-cli/internal/fetcher"
	"github.com/sells-group/schedule-cli/internal/model"
)

// PdfToText extracts positioned words from PDFs using the pdftotext CLI tool.
type PdfToText struct {
	binPath  string
	mergeGap float64
	log      *zap.Logger
}

// NewPdfToText creates a PdfToText loader. If binPath is empty, "pdftotext"
// is used. Adjacent words on a line closer than mergeGap points are joined
// into one phrase; a gap below zero disables merging.
func NewPdfToText(binPath string, mergeGap float64, log *zap.Logger) *PdfToText {
	if binPath == "" {
		binPath = "pdftotext"
	}
	if log == nil {
		log = zap.L()
	}
	return &PdfToText{binPath: binPath, mergeGap: mergeGap, log: log}
}

// Load runs pdftotext -bbox on the given PDF and returns one page per
// <page> element of its output.
func (p *PdfToText) Load(ctx context.Context, pdfPath string) ([]model.Page, error) {
	cmd := exec.CommandContext(ctx, p.binPath, "-bbox", pdfPath, "-")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, eris.Wrapf(err, "document: pdftotext failed for %s: %s", pdfPath, stderr.String())
	}

	pages, err := ParseBBox(ctx, &stdout, p.mergeGap)
	if err != nil {
		return nil, eris.Wrapf(err, "document: parse bbox output for %s", pdfPath)
	}

	if n, err := PageCount(pdfPath); err != nil {
		p.log.Debug("page count check skipped", zap.String("path", pdfPath), zap.Error(err))
	} else if n != len(pages) {
		p.log.Warn("pdftotext page count differs from pdf",
			zap.String("path", pdfPath),
			zap.Int("pdftotext_pages", len(pages)),
			zap.Int("pdf_pages", n),
		)
	}

	return pages, nil
}

type bboxWord struct {
	XMin float64 `xml:"xMin,attr"`
	YMin float64 `xml:"yMin,attr"`
	XMax float64 `xml:"xMax,attr"`
	YMax float64 `xml:"yMax,attr"`
	Text string  `xml:",chardata"`
}

// ParseBBox reads pdftotext -bbox XHTML. Coordinates are points from the top
// left corner, so they map onto model.Word directly.
func ParseBBox(ctx context.Context, r io.Reader, mergeGap float64) ([]model.Page, error) {
	dec := fetcher.NewXMLDecoder(r, true)

	var pages []model.Page
	err := fetcher.ScanXML(ctx, dec, func(se xml.StartElement) error {
		switch se.Name.Local {
		case "page":
			pages = append(pages, model.Page{Number: len(pages) + 1})
		case "word":
			if len(pages) == 0 {
				return eris.New("document: word outside of page")
			}
			var bw bboxWord
			if err := dec.DecodeElement(&bw, &se); err != nil {
				return eris.Wrap(err, "document: decode word")
			}
			text := strings.TrimSpace(norm.NFKC.String(bw.Text))
			if text == "" {
				return nil
			}
			cur := &pages[len(pages)-1]
			cur.Words = append(cur.Words, model.Word{
				Text:  text,
				Top:   bw.YMin,
				Left:  bw.XMin,
				Width: bw.XMax - bw.XMin,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if mergeGap >= 0 {
		for i := range pages {
			pages[i].Words = mergeWords(pages[i].Words, mergeGap)
		}
	}
	return pages, nil
}

// mergeWords joins consecutive words that share a line and are separated by
// at most gap points. pdftotext emits words in reading order, so only
// neighbours in the output are considered.
func mergeWords(words []model.Word, gap float64) []model.Word {
	if len(words) == 0 {
		return words
	}

	out := []model.Word{words[0]}
	for _, w := range words[1:] {
		last := &out[len(out)-1]
		space := w.Left - last.Right()
		if math.Round(w.Top) == math.Round(last.Top) && space >= 0 && space <= gap {
			right := w.Right()
			last.Text += " " + w.Text
			last.Width = right - last.Left
			continue
		}
		out = append(out, w)
	}
	return out
}
