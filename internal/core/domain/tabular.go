package domain

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	MenuColumns  = []string{"Drink"}
	CartColumns  = []string{"Drink", "Quantity"}
	OrderColumns = []string{"OrderNumber", "Date", "Drink", "Quantity"}
)

// DateLayout is how order dates are written to the log.
const DateLayout = time.RFC3339

// readDateLayouts are tried in order when reading the log. Older logs wrote
// a space instead of the T and no zone; those times are taken as UTC.
var readDateLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
}

func EncodeMenu(w io.Writer, m Menu) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(MenuColumns); err != nil {
		return err
	}
	for _, d := range m {
		if err := cw.Write([]string{d}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func DecodeMenu(r io.Reader) (Menu, error) {
	recs, err := readAll(r, len(MenuColumns))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptMenu, err)
	}
	if len(recs) == 0 || !sameHeader(recs[0], MenuColumns) {
		return nil, fmt.Errorf("%w: missing %v header", ErrCorruptMenu, MenuColumns)
	}
	out := make(Menu, 0, len(recs)-1)
	for _, rec := range recs[1:] {
		name := strings.TrimSpace(rec[0])
		if name == "" {
			continue
		}
		out = append(out, name)
	}
	return out, nil
}

// EncodeOrderLines writes lines as CSV; the header row is included when
// header is true so batches can be appended to an existing log.
func EncodeOrderLines(w io.Writer, lines []OrderLine, header bool) error {
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(OrderColumns); err != nil {
			return err
		}
	}
	for _, l := range lines {
		rec := []string{
			strconv.Itoa(l.OrderNumber),
			l.Date.UTC().Format(DateLayout),
			l.Drink,
			strconv.Itoa(l.Quantity),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeOrderLines parses a full order log. Any malformed row makes the
// whole log corrupt.
func DecodeOrderLines(r io.Reader) ([]OrderLine, error) {
	recs, err := readAll(r, len(OrderColumns))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptLog, err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrCorruptLog)
	}
	if !sameHeader(recs[0], OrderColumns) {
		return nil, fmt.Errorf("%w: unexpected header %v", ErrCorruptLog, recs[0])
	}

	out := make([]OrderLine, 0, len(recs)-1)
	for i, rec := range recs[1:] {
		l, err := parseOrderRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrCorruptLog, i+2, err)
		}
		out = append(out, l)
	}
	return out, nil
}

func parseOrderRecord(rec []string) (OrderLine, error) {
	n, err := parseCount(rec[0])
	if err != nil {
		return OrderLine{}, fmt.Errorf("order number: %w", err)
	}
	date, err := parseDate(rec[1])
	if err != nil {
		return OrderLine{}, fmt.Errorf("date: %w", err)
	}
	q, err := parseCount(rec[3])
	if err != nil {
		return OrderLine{}, fmt.Errorf("quantity: %w", err)
	}
	l := OrderLine{OrderNumber: n, Date: date.UTC(), Drink: rec[2], Quantity: q}
	if err := l.Validate(); err != nil {
		return OrderLine{}, err
	}
	return l, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var firstErr error
	for _, layout := range readDateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// parseCount accepts "3" and integral floats such as "3.0".
func parseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return int(f), nil
}

// CartCSV renders a cart summary as the downloadable drink_cart.csv.
func CartCSV(s CartSummary) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(CartColumns); err != nil {
		return nil, err
	}
	for _, it := range s {
		if err := cw.Write([]string{it.Drink, strconv.Itoa(it.Quantity)}); err != nil {
			return nil, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// OrdersCSV renders the whole log as the downloadable previous_orders.csv.
func OrdersCSV(lines []OrderLine) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeOrderLines(&buf, lines, true); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func readAll(r io.Reader, fields int) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = fields
	recs, err := cr.ReadAll()
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, fmt.Errorf("line %d: %v", perr.Line, perr.Err)
		}
		return nil, err
	}
	return recs, nil
}

func sameHeader(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		h := strings.TrimSpace(strings.TrimPrefix(got[i], "\ufeff"))
		if h != want[i] {
			return false
		}
	}
	return true
}
