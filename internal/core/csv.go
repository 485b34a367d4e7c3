// AngelaMos | 2026
// csv.go

package core

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	CSVDelimiter = ';'
	utf8BOM      = "\uFEFF"
)

// EncodeCSV writes a BOM-prefixed, semicolon-delimited table.
func EncodeCSV(out io.Writer, header []string, rows [][]string) error {
	if _, err := io.WriteString(out, utf8BOM); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}

	cw := csv.NewWriter(out)
	cw.Comma = CSVDelimiter

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}

	return nil
}

// CSV sends rows as a downloadable attachment named filename.
func CSV(
	w http.ResponseWriter,
	filename string,
	header []string,
	rows [][]string,
) error {
	var buf bytes.Buffer
	if err := EncodeCSV(&buf, header, rows); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)

	_, err := w.Write(buf.Bytes())
	return err
}

// FormatDate renders t as d/m/yyyy.
func FormatDate(t time.Time) string {
	return t.Format("2/1/2006")
}

func YesNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}

func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
