package entity

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Statement sentencia SQL parametrizada lista para ejecutar.
// Los valores viajan siempre en Args, nunca dentro de SQL.
type Statement struct {
	SQL  string
	Args []any
}

// Rowset resultado crudo de una consulta: nombres de columna en el orden de la
// proyección y una fila de valores por registro.
type Rowset struct {
	Columns []string
	Rows    [][]any
}

// ColumnIndex devuelve la posición de la columna o -1 si no existe.
func (r *Rowset) ColumnIndex(name string) int {
	for i, c := range r.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Field par nombre/valor de un registro.
type Field struct {
	Name  string
	Value any
}

// Record registro de salida. Se serializa como objeto JSON conservando el orden
// de las columnas (un map de Go las ordenaría alfabéticamente).
type Record []Field

// Get devuelve el valor del campo name.
func (r Record) Get(name string) (any, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// MarshalJSON implementa json.Marshaler. Los decimal.Decimal se escriben como número
// JSON con todos sus dígitos (decimal los serializa entre comillas por defecto).
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if err := writeValue(&buf, f.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeValue(buf *bytes.Buffer, v any) error {
	switch d := v.(type) {
	case decimal.Decimal:
		buf.WriteString(d.String())
		return nil
	case *decimal.Decimal:
		if d != nil {
			buf.WriteString(d.String())
			return nil
		}
	}
	val, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(val)
	return nil
}
