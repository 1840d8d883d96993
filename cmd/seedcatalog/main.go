// Command seedcatalog converts the shop's service price list Excel file into a
// SQL seed file for the services table.
// Usage: go run ./cmd/seedcatalog [price-list.xlsx]
// Output: db/seeds/services.sql
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const batchSize = 200

type catalogEntry struct {
	name          string
	description   string
	basePrice     float64
	category      string
	estimatedDays int
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	xlsxPath := "price-list.xlsx"
	if len(os.Args) > 1 {
		xlsxPath = os.Args[1]
	}
	outPath := "db/seeds/services.sql"

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries, err := parsePriceList(f)
	if err != nil {
		return fmt.Errorf("parse price list: %w", err)
	}
	log.Printf("price list: %d entries", len(entries))

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	w := func(s string) error { _, werr := fmt.Fprintln(out, s); return werr }

	for _, line := range []string{
		"-- Service catalog seed data generated from the price list Excel file.",
		fmt.Sprintf("-- %d entries in batches of %d.", len(entries), batchSize),
		"BEGIN;",
		"",
	} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write header: %w", werr)
		}
	}

	for i := 0; i < len(entries); i += batchSize {
		end := i + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := writeBatch(out, entries[i:end]); err != nil {
			return fmt.Errorf("write batch at offset %d: %w", i, err)
		}
	}

	for _, line := range []string{"", "COMMIT;"} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write footer: %w", werr)
		}
	}

	log.Printf("Generated %d entries in %s", len(entries), outPath)
	return nil
}

// parsePriceList reads the first sheet of the workbook.
// Columns: A(0)=name, B(1)=description, C(2)=category, D(3)=base price,
// E(4)=estimated days. Data starts at row index 1 (row 0 is the header).
func parsePriceList(f *excelize.File) ([]catalogEntry, error) {
	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var entries []catalogEntry
	for i := 1; i < len(rows); i++ {
		row := rows[i]

		name := strings.TrimSpace(cellVal(row, 0))
		if name == "" || seen[name] {
			continue
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(cellVal(row, 3)), 64)
		if err != nil || price <= 0 {
			continue
		}

		days, err := strconv.Atoi(strings.TrimSpace(cellVal(row, 4)))
		if err != nil || days <= 0 {
			days = 7
		}

		seen[name] = true
		entries = append(entries, catalogEntry{
			name:          name,
			description:   strings.TrimSpace(cellVal(row, 1)),
			basePrice:     price,
			category:      strings.TrimSpace(cellVal(row, 2)),
			estimatedDays: days,
		})
	}
	return entries, nil
}

func writeBatch(out *os.File, batch []catalogEntry) error {
	if len(batch) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("INSERT INTO services (id, name, description, base_price, category, estimated_days, is_active, created_at) VALUES\n")

	for i := range batch {
		e := &batch[i]
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "  (gen_random_uuid(), '%s', '%s', %.2f, '%s', %d, TRUE, NOW())",
			escapeSQL(e.name), escapeSQL(e.description), e.basePrice, escapeSQL(e.category), e.estimatedDays)
	}

	b.WriteString("\nON CONFLICT (name) DO NOTHING;\n")

	_, err := out.WriteString(b.String())
	return err
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
