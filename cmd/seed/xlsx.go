package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beanvanilla/storefront-backend/internal/app/model"
	"github.com/beanvanilla/storefront-backend/pkg/pricing"
	"github.com/xuri/excelize/v2"
)

// SkippedRow explains why a sheet row was not imported. Row is 1-based as
// shown in a spreadsheet.
type SkippedRow struct {
	Row    int
	Reason string
}

type ImportResult struct {
	Rows     int
	Products []model.Product
	Skipped  []SkippedRow
}

var requiredColumns = []string{"name", "category", "price"}

func readProductsFromXLSX(path string) (*ImportResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return parseRows(rows)
}

// parseRows maps sheet rows to products using the header row.
func parseRows(rows [][]string) (*ImportResult, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	columns := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := columns[strings.ToLower(c)]; !ok {
			return nil, fmt.Errorf("missing required column %q", c)
		}
	}

	result := &ImportResult{Rows: len(rows) - 1}
	seen := make(map[string]bool)

	for i, row := range rows[1:] {
		rowNum := i + 2
		product, err := parseProductRow(columns, row)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedRow{Row: rowNum, Reason: err.Error()})
			continue
		}
		if seen[product.Name] {
			result.Skipped = append(result.Skipped, SkippedRow{Row: rowNum, Reason: "duplicate name " + product.Name})
			continue
		}
		seen[product.Name] = true
		result.Products = append(result.Products, *product)
	}

	return result, nil
}

func parseProductRow(columns map[string]int, row []string) (*model.Product, error) {
	cell := func(name string) string {
		i, ok := columns[strings.ToLower(name)]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	p := &model.Product{
		Name:        cell("name"),
		Image:       cell("image"),
		Brand:       cell("brand"),
		Category:    cell("category"),
		Type:        cell("type"),
		Description: cell("description"),
		Material:    cell("material"),
		Stone:       cell("stone"),
		Movement:    cell("movement"),
		CaseSize:    cell("caseSize"),
		Occasions:   splitList(cell("occasions")),
		Tags:        splitList(cell("tags")),
		Recipients:  splitList(cell("recipients")),
	}
	if p.Name == "" {
		return nil, fmt.Errorf("name is empty")
	}
	if p.Category == "" {
		return nil, fmt.Errorf("category is empty")
	}
	if p.Description == "" {
		p.Description = p.Name
	}

	rawPrice := strings.TrimPrefix(cell("price"), "$")
	f, err := strconv.ParseFloat(rawPrice, 64)
	if err != nil {
		return nil, fmt.Errorf("price %q is not a number", rawPrice)
	}
	price, err := pricing.ParsePrice(f)
	if err != nil {
		return nil, err
	}
	p.Price = pricing.NewMoney(price)

	if raw := cell("countInStock"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("countInStock %q must be a non-negative integer", raw)
		}
		p.CountInStock = n
	}

	return p, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToLower(part))
		}
	}
	return out
}
