// Package decode turns statement files into the two raw shapes the
// parsers consume: a grid of string cells for tabular formats and a
// sequence of text rows for PDFs.
package decode

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/dslipak/pdf"
	"github.com/sirupsen/logrus"
)

// PDFRowsFromReader extracts one text row per visual line across all
// pages. Pages that fail text extraction are skipped, not fatal.
func PDFRowsFromReader(reader io.Reader) ([]string, error) {
	var rAt io.ReaderAt
	var size int64

	switch v := reader.(type) {
	case io.ReaderAt:
		rAt = v
		seeker, ok := reader.(io.Seeker)
		if !ok {
			return nil, io.ErrUnexpectedEOF
		}
		cur, _ := seeker.Seek(0, io.SeekCurrent)
		end, _ := seeker.Seek(0, io.SeekEnd)
		seeker.Seek(cur, io.SeekStart)
		size = end
	default:
		buf := new(bytes.Buffer)
		if _, err := buf.ReadFrom(reader); err != nil {
			return nil, err
		}
		b := buf.Bytes()
		rAt = bytes.NewReader(b)
		size = int64(len(b))
	}

	r, err := pdf.NewReader(rAt, size)
	if err != nil {
		return nil, err
	}

	numPages := r.NumPage()
	rows := make([]string, 0, numPages*100)

	for no := 1; no <= numPages; no++ {
		page := r.Page(no)
		pageRows, err := page.GetTextByRow()
		if err != nil {
			logrus.WithField("page", no).WithError(err).Warn("skipping unreadable PDF page")
			continue
		}

		for _, row := range pageRows {
			var builder strings.Builder
			for i, text := range row.Content {
				builder.WriteString(text.S)
				if i < len(row.Content)-1 {
					builder.WriteByte(' ')
				}
			}
			if builder.Len() > 0 {
				rows = append(rows, builder.String())
			}
		}
	}

	return rows, nil
}

// PDFRows opens path and extracts its text rows.
func PDFRows(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return PDFRowsFromReader(file)
}
