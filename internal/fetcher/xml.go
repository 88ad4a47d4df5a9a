package fetcher

import (
	"context"
	"encoding/xml"
	"io"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"
)

// NewXMLDecoder returns a decoder that understands any charset known to the
// HTML index. Lenient decoders also accept XHTML quirks such as named
// entities and unclosed void elements.
func NewXMLDecoder(r io.Reader, lenient bool) *xml.Decoder {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, eris.Wrapf(err, "xml: unsupported charset %q", charset)
		}
		return enc.NewDecoder().Reader(input), nil
	}
	if lenient {
		decoder.Strict = false
		decoder.AutoClose = xml.HTMLAutoClose
		decoder.Entity = xml.HTMLEntity
	}
	return decoder
}

// ScanXML calls fn for every start element of decoder in document order.
// fn may consume the element with decoder.DecodeElement.
func ScanXML(ctx context.Context, decoder *xml.Decoder, fn func(se xml.StartElement) error) error {
	for {
		if ctx.Err() != nil {
			return eris.Wrap(ctx.Err(), "xml: context cancelled")
		}

		tok, err := decoder.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return eris.Wrap(err, "xml: read token")
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if err := fn(se); err != nil {
			return err
		}
	}
}
