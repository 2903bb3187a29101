package shaping

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/albaranes-api/internal/domain/entity"
)

// Truncation dirección del recorte de filas.
type Truncation int

const (
	TruncateNone Truncation = iota
	TruncateHead            // conserva las primeras Limit filas
	TruncateTail            // conserva las últimas Limit filas
)

// Policy transformaciones de presentación de un recurso.
type Policy struct {
	SignColumn      string         // columna numérica cuyo signo se invierte
	ConditionColumn string         // columna que decide la inversión
	IsNegative      func(any) bool // marcador "negativo" sobre ConditionColumn
	NumericColumns  []string       // columnas que salen como número aunque el driver las entregue como texto
	Limit           int            // 0 = sin recorte
	Truncation      Truncation
}

// Shape aplica inversión de signo y recorte, y convierte cada fila en un Record
// que conserva el orden de la proyección. Las filas conservadas mantienen el
// orden devuelto por la base de datos.
func Shape(rows *entity.Rowset, p Policy) []entity.Record {
	if rows == nil {
		return []entity.Record{}
	}
	kept := truncate(rows.Rows, p.Limit, p.Truncation)

	signIdx, condIdx := -1, -1
	if p.IsNegative != nil && p.SignColumn != "" && p.ConditionColumn != "" {
		signIdx = rows.ColumnIndex(p.SignColumn)
		condIdx = rows.ColumnIndex(p.ConditionColumn)
	}

	numeric := make(map[int]bool, len(p.NumericColumns)+1)
	for _, col := range p.NumericColumns {
		if i := rows.ColumnIndex(col); i >= 0 {
			numeric[i] = true
		}
	}
	if signIdx >= 0 {
		numeric[signIdx] = true
	}

	out := make([]entity.Record, 0, len(kept))
	for _, row := range kept {
		negate := signIdx >= 0 && condIdx >= 0 && condIdx < len(row) && p.IsNegative(row[condIdx])
		rec := make(entity.Record, len(rows.Columns))
		for i, col := range rows.Columns {
			var v any
			if i < len(row) {
				v = row[i]
			}
			if numeric[i] {
				if amount, ok := toDecimal(v); ok {
					if negate && i == signIdx {
						amount = amount.Abs().Neg()
					}
					v = amount
				}
			}
			rec[i] = entity.Field{Name: col, Value: present(v)}
		}
		out = append(out, rec)
	}
	return out
}

func truncate(rows [][]any, limit int, t Truncation) [][]any {
	if limit <= 0 || len(rows) <= limit {
		return rows
	}
	switch t {
	case TruncateHead:
		return rows[:limit]
	case TruncateTail:
		return rows[len(rows)-limit:]
	default:
		return rows
	}
}

// toDecimal interpreta los tipos numéricos que devuelven los drivers ODBC.
func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case float64:
		return decimal.NewFromFloat(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case int64:
		return decimal.NewFromInt(n), true
	case int32:
		return decimal.NewFromInt32(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case *big.Rat:
		return decimal.NewFromBigRat(n, 10), true
	case []byte:
		d, err := decimal.NewFromString(strings.TrimSpace(string(n)))
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		return d, err == nil
	default:
		return decimal.Decimal{}, false
	}
}

// present adapta valores crudos a su forma JSON: fechas sin hora como YYYY-MM-DD,
// bytes como texto.
func present(v any) any {
	switch x := v.(type) {
	case []byte:
		return string(x)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format(entity.ISODateLayout)
		}
		return x
	default:
		return v
	}
}

// EqualsText marcador que compara texto ignorando el relleno de columnas CHAR.
func EqualsText(marker string) func(any) bool {
	return func(v any) bool {
		switch s := v.(type) {
		case string:
			return strings.TrimSpace(s) == marker
		case []byte:
			return strings.TrimSpace(string(s)) == marker
		default:
			return false
		}
	}
}

// IsFalse marcador para columnas lógicas. Los drivers ODBC devuelven BIT/LOGICAL
// como bool, entero o texto según la versión.
func IsFalse(v any) bool {
	switch b := v.(type) {
	case bool:
		return !b
	case int64:
		return b == 0
	case int32:
		return b == 0
	case int:
		return b == 0
	case []byte:
		return isFalseText(string(b))
	case string:
		return isFalseText(b)
	default:
		return false
	}
}

func isFalseText(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "0", "false", "no", "f", "n":
		return true
	default:
		return false
	}
}

// String describe la política para logs.
func (p Policy) String() string {
	dir := "none"
	switch p.Truncation {
	case TruncateHead:
		dir = "head"
	case TruncateTail:
		dir = "tail"
	}
	return fmt.Sprintf("sign=%s cond=%s limit=%d truncation=%s", p.SignColumn, p.ConditionColumn, p.Limit, dir)
}
