package document

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CSVReader handles phase lists exported as CSV. Each row is
// name,min_hours[,max_hours]; a non-numeric second column (a header row)
// is skipped. Rows are synthesized into heading + estimate-line pairs.
type CSVReader struct{}

func (p *CSVReader) Read(r io.Reader, filename string) (string, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("parse csv: %w", err)
	}

	var b strings.Builder
	for _, rec := range records {
		if len(rec) < 2 {
			continue
		}
		name := strings.TrimSpace(rec[0])
		if name == "" {
			continue
		}
		lo, err := strconv.Atoi(strings.TrimSpace(rec[1]))
		if err != nil {
			continue
		}
		hi := lo
		if len(rec) > 2 && strings.TrimSpace(rec[2]) != "" {
			hi, err = strconv.Atoi(strings.TrimSpace(rec[2]))
			if err != nil {
				continue
			}
		}
		fmt.Fprintf(&b, "### %s\n\n**Stima ore**: %d-%d ore\n\n", name, lo, hi)
	}

	return b.String(), nil
}
