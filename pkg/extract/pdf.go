package extract

import (
	"bytes"

	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
)

// Text extracts the plain text of every page of a PDF document. A corrupt or
// unreadable document is a hard failure; no partial text is returned.
func Text(content []byte) (extracted string, err error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		err = errors.Wrap(err, "failed to open PDF")
		return extracted, err
	}

	var buf bytes.Buffer
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		var pageText string
		pageText, err = page.GetPlainText(nil)
		if err != nil {
			err = errors.Wrapf(err, "failed to extract text from page %d", pageNum)
			return extracted, err
		}
		buf.WriteString(pageText)
	}

	extracted = buf.String()
	return extracted, err
}
