package entity

import (
	"strconv"
	"time"

	"github.com/jhoicas/albaranes-api/internal/domain"
)

// ISODateLayout formato de fecha que se envía como parámetro a TO_DATE(?, 'YYYY-MM-DD').
const ISODateLayout = "2006-01-02"

// DeliveryDate fecha de calendario validada de un albarán.
type DeliveryDate struct {
	t time.Time
}

// NewDeliveryDate construye la fecha y falla con InvalidDateError si año/mes/día
// no forman una fecha real (ej. 30 de febrero).
func NewDeliveryDate(year, month, day int) (DeliveryDate, error) {
	if year < 1 || year > 9999 || month < 1 || month > 12 || day < 1 || day > 31 {
		return DeliveryDate{}, domain.NewError(domain.KindInvalidDate,
			"fecha inválida: %04d-%02d-%02d", year, month, day)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normaliza (31/04 -> 01/05); si cambia algún componente la fecha no existe.
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return DeliveryDate{}, domain.NewError(domain.KindInvalidDate,
			"fecha inválida: %04d-%02d-%02d", year, month, day)
	}
	return DeliveryDate{t: t}, nil
}

// ParseDeliveryDate valida los segmentos de ruta: año de 4 dígitos, mes y día de 1 o 2.
func ParseDeliveryDate(year, month, day string) (DeliveryDate, error) {
	y, err := parseDigits(year, 4, 4)
	if err != nil {
		return DeliveryDate{}, domain.NewError(domain.KindInvalidDate, "año inválido: %q (formato YYYY)", year)
	}
	m, err := parseDigits(month, 1, 2)
	if err != nil {
		return DeliveryDate{}, domain.NewError(domain.KindInvalidDate, "mes inválido: %q (formato MM)", month)
	}
	d, err := parseDigits(day, 1, 2)
	if err != nil {
		return DeliveryDate{}, domain.NewError(domain.KindInvalidDate, "día inválido: %q (formato DD)", day)
	}
	return NewDeliveryDate(y, m, d)
}

func parseDigits(s string, minLen, maxLen int) (int, error) {
	if len(s) < minLen || len(s) > maxLen {
		return 0, strconv.ErrRange
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.Atoi(s)
}

// ISO devuelve la fecha en formato YYYY-MM-DD.
func (d DeliveryDate) ISO() string {
	return d.t.Format(ISODateLayout)
}

// IsZero indica si la fecha no fue inicializada.
func (d DeliveryDate) IsZero() bool {
	return d.t.IsZero()
}

// Time devuelve la fecha como time.Time (UTC, medianoche).
func (d DeliveryDate) Time() time.Time {
	return d.t
}
