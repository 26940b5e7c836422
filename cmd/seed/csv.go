package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// newCSVReader lee CSV con encabezado; latin1 decodifica exportaciones ISO-8859-1 a UTF-8.
func newCSVReader(r io.Reader, latin1 bool) *csv.Reader {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	return cr
}

// readRows devuelve las filas sin el encabezado, validando la cantidad mínima de columnas.
func readRows(cr *csv.Reader, minCols int) ([][]string, error) {
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	rows := records[1:]
	for i, row := range rows {
		if len(row) < minCols {
			return nil, fmt.Errorf("línea %d: se esperaban %d columnas, hay %d", i+2, minCols, len(row))
		}
	}
	return rows, nil
}

func parseID(s string, line int) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("línea %d: id inválido %q", line, s)
	}
	return id, nil
}

// parseProducts: id,name,description,price
func parseProducts(r io.Reader, latin1 bool) ([]entity.Product, error) {
	rows, err := readRows(newCSVReader(r, latin1), 4)
	if err != nil {
		return nil, fmt.Errorf("productos: %w", err)
	}
	out := make([]entity.Product, 0, len(rows))
	for i, row := range rows {
		line := i + 2
		id, err := parseID(row[0], line)
		if err != nil {
			return nil, fmt.Errorf("productos: %w", err)
		}
		price, err := decimal.NewFromString(strings.TrimSpace(row[3]))
		if err != nil || price.IsNegative() {
			return nil, fmt.Errorf("productos: línea %d: precio inválido %q", line, row[3])
		}
		out = append(out, entity.Product{ID: id, Name: row[1], Description: row[2], Price: price})
	}
	return out, nil
}

// parseWarehouses: id,name,address
func parseWarehouses(r io.Reader, latin1 bool) ([]entity.Warehouse, error) {
	rows, err := readRows(newCSVReader(r, latin1), 3)
	if err != nil {
		return nil, fmt.Errorf("bodegas: %w", err)
	}
	out := make([]entity.Warehouse, 0, len(rows))
	for i, row := range rows {
		id, err := parseID(row[0], i+2)
		if err != nil {
			return nil, fmt.Errorf("bodegas: %w", err)
		}
		out = append(out, entity.Warehouse{ID: id, Name: row[1], Address: row[2]})
	}
	return out, nil
}

// parseOrders: id,product_id,amount,created_at[,fulfilled_at] con fechas RFC3339.
func parseOrders(r io.Reader, latin1 bool) ([]entity.Order, error) {
	rows, err := readRows(newCSVReader(r, latin1), 4)
	if err != nil {
		return nil, fmt.Errorf("órdenes: %w", err)
	}
	out := make([]entity.Order, 0, len(rows))
	for i, row := range rows {
		line := i + 2
		id, err := parseID(row[0], line)
		if err != nil {
			return nil, fmt.Errorf("órdenes: %w", err)
		}
		productID, err := parseID(row[1], line)
		if err != nil {
			return nil, fmt.Errorf("órdenes: %w", err)
		}
		amount, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil || amount <= 0 {
			return nil, fmt.Errorf("órdenes: línea %d: amount inválido %q", line, row[2])
		}
		createdAt, err := time.Parse(time.RFC3339, strings.TrimSpace(row[3]))
		if err != nil {
			return nil, fmt.Errorf("órdenes: línea %d: created_at: %w", line, err)
		}
		o := entity.Order{ID: id, ProductID: productID, Amount: amount, CreatedAt: createdAt}
		if len(row) > 4 && strings.TrimSpace(row[4]) != "" {
			at, err := time.Parse(time.RFC3339, strings.TrimSpace(row[4]))
			if err != nil {
				return nil, fmt.Errorf("órdenes: línea %d: fulfilled_at: %w", line, err)
			}
			o.FulfilledAt = &at
		}
		out = append(out, o)
	}
	return out, nil
}
