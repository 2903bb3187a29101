package entity_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/albaranes-api/internal/domain"
	"github.com/jhoicas/albaranes-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Filtros
// ──────────────────────────────────────────────────────────────────────────────

func TestParseCustomerDocumentType_Mapeo(t *testing.T) {
	f, err := entity.ParseCustomerDocumentType("Factura")
	require.NoError(t, err)
	assert.Equal(t, "F", f.Stored)

	a, err := entity.ParseCustomerDocumentType("Abono")
	require.NoError(t, err)
	assert.Equal(t, "A", a.Stored)
}

func TestParseCustomerDocumentType_EtiquetaDesconocida(t *testing.T) {
	_, err := entity.ParseCustomerDocumentType("Bogus")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidFilter)

	// El valor almacenado no es una etiqueta válida.
	_, err = entity.ParseCustomerDocumentType("F")
	assert.ErrorIs(t, err, domain.ErrInvalidFilter)
}

func TestParseSupplierNoteType_Mapeo(t *testing.T) {
	c, err := entity.ParseSupplierNoteType("Cargo")
	require.NoError(t, err)
	assert.True(t, c.IsCharge)

	a, err := entity.ParseSupplierNoteType("Abono")
	require.NoError(t, err)
	assert.False(t, a.IsCharge)

	_, err = entity.ParseSupplierNoteType("Factura")
	assert.ErrorIs(t, err, domain.ErrInvalidFilter)
}

func TestParsePaymentMethod_AceptaNFCyNFD(t *testing.T) {
	composed := "Crédito"
	decomposed := "Cre\u0301dito"

	pc, err := entity.ParsePaymentMethod(composed)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentCredito, pc.Stored)

	pd, err := entity.ParsePaymentMethod(decomposed)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentCredito, pd.Stored)

	contado, err := entity.ParsePaymentMethod("Contado")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentContado, contado.Stored)

	_, err = entity.ParsePaymentMethod("Credito")
	assert.ErrorIs(t, err, domain.ErrInvalidFilter)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fechas
// ──────────────────────────────────────────────────────────────────────────────

func TestNewDeliveryDate_FormatoISO(t *testing.T) {
	cases := []struct {
		y, m, d int
		want    string
	}{
		{2024, 3, 15, "2024-03-15"},
		{2024, 2, 29, "2024-02-29"},
		{999, 1, 1, "0999-01-01"},
		{2023, 12, 31, "2023-12-31"},
	}
	for _, tc := range cases {
		d, err := entity.NewDeliveryDate(tc.y, tc.m, tc.d)
		require.NoError(t, err)
		assert.Equal(t, tc.want, d.ISO())
	}
}

func TestNewDeliveryDate_FechasImposibles(t *testing.T) {
	cases := [][3]int{
		{2024, 2, 30},
		{2023, 2, 29},
		{2024, 4, 31},
		{2024, 13, 1},
		{2024, 0, 10},
		{2024, 5, 0},
		{0, 1, 1},
	}
	for _, c := range cases {
		_, err := entity.NewDeliveryDate(c[0], c[1], c[2])
		assert.ErrorIs(t, err, domain.ErrInvalidDate, "%v debe ser inválida", c)
	}
}

func TestParseDeliveryDate_Segmentos(t *testing.T) {
	d, err := entity.ParseDeliveryDate("2024", "03", "15")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", d.ISO())

	d, err = entity.ParseDeliveryDate("2024", "3", "5")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", d.ISO())

	for _, bad := range [][3]string{
		{"24", "03", "15"},
		{"2024", "003", "15"},
		{"2024", "03", "x1"},
		{"2024", "-1", "15"},
		{"2024", "", "15"},
	} {
		_, err := entity.ParseDeliveryDate(bad[0], bad[1], bad[2])
		assert.ErrorIs(t, err, domain.ErrInvalidDate, "%v debe ser inválida", bad)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Record
// ──────────────────────────────────────────────────────────────────────────────

func TestRecord_MarshalConservaOrden(t *testing.T) {
	r := entity.Record{
		{Name: "tot_alb", Value: decimal.RequireFromString("-12.50")},
		{Name: "cod_cli", Value: "C001"},
		{Name: "doc_alb", Value: "A"},
	}
	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"tot_alb":-12.5,"cod_cli":"C001","doc_alb":"A"}`, string(b))

	v, ok := r.Get("cod_cli")
	assert.True(t, ok)
	assert.Equal(t, "C001", v)
}

func TestRecord_DecimalComoNumeroSinPerderPrecision(t *testing.T) {
	r := entity.Record{
		{Name: "tot_alb", Value: decimal.RequireFromString("12345678901234567.89")},
		{Name: "ptr", Value: (*decimal.Decimal)(nil)},
	}
	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"tot_alb":12345678901234567.89,"ptr":null}`, string(b))

	var back map[string]json.Number
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&back))
	assert.Equal(t, json.Number("12345678901234567.89"), back["tot_alb"])
}
