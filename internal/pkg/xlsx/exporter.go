// Package xlsx выгружает записи оценок в книгу Excel.
package xlsx

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/unidoc/unioffice/common/license"
	"github.com/unidoc/unioffice/spreadsheet"
)

const (
	evaluationsSheet = "Evaluaciones"
	summarySheet     = "Resumen"
)

// ErrNoLicense ключ лицензии UniDoc не задан
var ErrNoLicense = errors.New("unidoc license key is not set")

// SetLicense активирует лицензию UniDoc по ключу с тарификацией
func SetLicense(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrNoLicense
	}
	if err := license.SetMeteredKey(key); err != nil {
		return fmt.Errorf("failed to load unidoc license: %w", err)
	}
	return nil
}

// Input данные для выгрузки
type Input struct {
	ChildName      string
	ReportType     string
	EvaluationDate time.Time
	Evaluations    []map[string]any
}

// ColumnAverage среднее значение числовой колонки
type ColumnAverage struct {
	Column  string
	Average float64
	Count   int
}

// Columns возвращает отсортированное объединение ключей всех записей
func Columns(evals []map[string]any) []string {
	seen := make(map[string]struct{})
	for _, e := range evals {
		for k := range e {
			seen[k] = struct{}{}
		}
	}
	cols := make([]string, 0, len(seen))
	for k := range seen {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// Averages считает средние по колонкам, в которых есть числа.
// Нечисловые значения в расчете не участвуют.
func Averages(evals []map[string]any) []ColumnAverage {
	var out []ColumnAverage
	for _, col := range Columns(evals) {
		var sum float64
		var n int
		for _, e := range evals {
			if v, ok := number(e[col]); ok {
				sum += v
				n++
			}
		}
		if n > 0 {
			out = append(out, ColumnAverage{Column: col, Average: sum / float64(n), Count: n})
		}
	}
	return out
}

// Export строит книгу с листами "Evaluaciones" и "Resumen"
func Export(in Input) ([]byte, error) {
	wb := spreadsheet.New()
	defer wb.Close()

	bold := wb.StyleSheet.AddCellStyle()
	font := wb.StyleSheet.AddFont()
	font.SetBold(true)
	bold.SetFont(font)

	cols := Columns(in.Evaluations)

	evals := wb.AddSheet()
	evals.SetName(evaluationsSheet)
	header := evals.AddRow()
	for _, col := range cols {
		cell := header.AddCell()
		cell.SetString(col)
		cell.SetStyle(bold)
	}
	for _, e := range in.Evaluations {
		row := evals.AddRow()
		for _, col := range cols {
			setValue(row.AddCell(), e[col])
		}
	}

	summary := wb.AddSheet()
	summary.SetName(summarySheet)
	addPair := func(label string, set func(spreadsheet.Cell)) {
		row := summary.AddRow()
		l := row.AddCell()
		l.SetString(label)
		l.SetStyle(bold)
		set(row.AddCell())
	}
	addPair("Estudiante", func(c spreadsheet.Cell) { c.SetString(in.ChildName) })
	addPair("Tipo de reporte", func(c spreadsheet.Cell) { c.SetString(in.ReportType) })
	addPair("Fecha", func(c spreadsheet.Cell) {
		if in.EvaluationDate.IsZero() {
			c.SetString("")
			return
		}
		c.SetString(in.EvaluationDate.Format("2006-01-02"))
	})
	addPair("Evaluaciones", func(c spreadsheet.Cell) { c.SetNumber(float64(len(in.Evaluations))) })

	if avgs := Averages(in.Evaluations); len(avgs) > 0 {
		summary.AddRow()
		head := summary.AddRow()
		for _, title := range []string{"Columna", "Promedio", "Registros"} {
			c := head.AddCell()
			c.SetString(title)
			c.SetStyle(bold)
		}
		for _, a := range avgs {
			row := summary.AddRow()
			row.AddCell().SetString(a.Column)
			row.AddCell().SetNumber(a.Average)
			row.AddCell().SetNumber(float64(a.Count))
		}
	}

	if err := wb.Validate(); err != nil {
		return nil, fmt.Errorf("invalid workbook: %w", err)
	}

	var buf bytes.Buffer
	if err := wb.Save(&buf); err != nil {
		return nil, fmt.Errorf("failed to save workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setValue(cell spreadsheet.Cell, v any) {
	if f, ok := number(v); ok {
		cell.SetNumber(f)
		return
	}
	switch val := v.(type) {
	case nil:
		cell.SetString("")
	case string:
		cell.SetString(val)
	case bool:
		cell.SetBool(val)
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			cell.SetString(fmt.Sprint(val))
			return
		}
		cell.SetString(string(raw))
	}
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
