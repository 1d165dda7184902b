package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Record es cualquier fuente de valores por campo (alias.columna) evaluable por un Predicate.
type Record interface {
	Value(f Field) (any, bool)
}

// Row es una fila cruda devuelta por el ejecutor, indexada por "alias.columna".
type Row map[string]any

var _ Record = Row(nil)

// Value implementa Record.
func (r Row) Value(f Field) (any, bool) {
	v, ok := r[string(f)]
	return v, ok
}

// IsNull indica si el campo no existe o es NULL.
func (r Row) IsNull(f Field) bool {
	v, ok := r[string(f)]
	return !ok || v == nil
}

// Project devuelve una copia con solo los campos de los alias indicados.
func (r Row) Project(aliases ...string) Row {
	out := make(Row, len(r))
	for k, v := range r {
		for _, a := range aliases {
			if strings.HasPrefix(k, a+".") {
				out[k] = v
				break
			}
		}
	}
	return out
}

// String devuelve el campo como texto ("" si es NULL).
func (r Row) String(f Field) string {
	switch v := r[string(f)].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// Int64 devuelve el campo como entero (0 si es NULL o no convertible).
func (r Row) Int64(f Field) int64 {
	n, _ := toInt64(r[string(f)])
	return n
}

// Int es Int64 truncado a int.
func (r Row) Int(f Field) int {
	return int(r.Int64(f))
}

// Int64Ptr devuelve nil cuando el campo es NULL.
func (r Row) Int64Ptr(f Field) *int64 {
	if r.IsNull(f) {
		return nil
	}
	n := r.Int64(f)
	return &n
}

// Decimal devuelve el campo como decimal (cero si es NULL).
func (r Row) Decimal(f Field) decimal.Decimal {
	switch v := r[string(f)].(type) {
	case decimal.Decimal:
		return v
	case int64:
		return decimal.NewFromInt(v)
	case int32:
		return decimal.NewFromInt32(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case float64:
		return decimal.NewFromFloat(v)
	case string:
		d, _ := decimal.NewFromString(v)
		return d
	case []byte:
		d, _ := decimal.NewFromString(string(v))
		return d
	default:
		return decimal.Zero
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Time devuelve el campo como fecha; acepta time.Time o texto en los formatos habituales de SQLite.
func (r Row) Time(f Field) time.Time {
	switch v := r[string(f)].(type) {
	case time.Time:
		return v
	case string:
		return parseTime(v)
	case []byte:
		return parseTime(string(v))
	default:
		return time.Time{}
	}
}

func parseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Key devuelve el valor del campo normalizado para usarse como clave de agrupación.
func (r Row) Key(f Field) any {
	return NormalizeKey(r[string(f)])
}

// NormalizeKey unifica los tipos enteros y de texto que devuelven los distintos drivers,
// de modo que la misma clave leída de dos consultas sea comparable.
func NormalizeKey(v any) any {
	switch k := v.(type) {
	case int:
		return int64(k)
	case int8:
		return int64(k)
	case int16:
		return int64(k)
	case int32:
		return int64(k)
	case uint8:
		return int64(k)
	case uint16:
		return int64(k)
	case uint32:
		return int64(k)
	case uint, uint64, float32, float64, decimal.Decimal:
		if n, ok := toInt64(k); ok {
			return n
		}
		return v
	case []byte:
		return string(k)
	default:
		return v
	}
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int8:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint:
		return int64(n), uint64(n) <= math.MaxInt64
	case uint64:
		return int64(n), n <= math.MaxInt64
	case float32:
		return wholeFloat(float64(n))
	case float64:
		return wholeFloat(n)
	case decimal.Decimal:
		if !n.Equal(n.Truncate(0)) || n.GreaterThan(maxInt64) || n.LessThan(minInt64) {
			return 0, false
		}
		return n.IntPart(), true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	case []byte:
		i, err := strconv.ParseInt(strings.TrimSpace(string(n)), 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

var (
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
	minInt64 = decimal.NewFromInt(math.MinInt64)
)

// wholeFloat acepta solo floats enteros dentro de rango; 20.5 no es una clave ni una edad.
func wholeFloat(f float64) (int64, bool) {
	if f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}
