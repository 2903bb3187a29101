package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/albaranes-api/internal/application/usecase"
	"github.com/jhoicas/albaranes-api/internal/domain"
	"github.com/jhoicas/albaranes-api/internal/domain/entity"
	"github.com/jhoicas/albaranes-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Doble de prueba del conector
// ──────────────────────────────────────────────────────────────────────────────

type fakeConnector struct {
	opened   int
	released int
	openErr  error
	queryErr error
	rows     *entity.Rowset

	lastStmt    entity.Statement
	lastMaxRows int
}

func (f *fakeConnector) WithConnection(ctx context.Context, fn func(q repository.Querier) error) error {
	if f.openErr != nil {
		return domain.WrapError(domain.KindDatabaseConnection, f.openErr, "error de conexión a la base de datos")
	}
	f.opened++
	defer func() { f.released++ }()
	return fn(f)
}

func (f *fakeConnector) Query(_ context.Context, stmt entity.Statement, maxRows int) (*entity.Rowset, error) {
	f.lastStmt = stmt
	f.lastMaxRows = maxRows
	if f.queryErr != nil {
		return nil, domain.WrapError(domain.KindQueryExecution, f.queryErr, "error ejecutando la consulta")
	}
	return f.rows, nil
}

func (f *fakeConnector) Ping(context.Context) error { return f.openErr }

func customerRowset(n int, doc string, amount string) *entity.Rowset {
	rs := &entity.Rowset{Columns: []string{"cod_cli", "doc_alb", "fec_alb", "raz_cli", "tot_alb"}}
	for i := 0; i < n; i++ {
		rs.Rows = append(rs.Rows, []any{fmt.Sprintf("C%03d", i), doc, "2024-03-15", "ACME", []byte(amount)})
	}
	return rs
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomerHeadersByDate_EjemploAbono(t *testing.T) {
	fc := &fakeConnector{rows: customerRowset(3, "A", "45.10")}
	uc := usecase.NewAlbaranUseCase(fc, nil)

	resp, err := uc.CustomerHeadersByDate(context.Background(), "2024", "03", "15", "Abono")
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT cod_cli, doc_alb, fec_alb, raz_cli, tot_alb FROM pub.gvalcab WHERE fec_alb = TO_DATE(?, 'YYYY-MM-DD') AND doc_alb = ?",
		fc.lastStmt.SQL)
	assert.Equal(t, []any{"2024-03-15", "A"}, fc.lastStmt.Args)
	assert.Equal(t, "success", resp.Status)
	require.Len(t, resp.Results, 3)
	for _, rec := range resp.Results {
		v, _ := rec.Get("tot_alb")
		assert.True(t, v.(decimal.Decimal).LessThanOrEqual(decimal.Zero), "los abonos deben ser no positivos")
	}
	assert.Equal(t, 1, fc.opened)
	assert.Equal(t, 1, fc.released)
}

func TestCustomerHeaders_Ultimas100(t *testing.T) {
	fc := &fakeConnector{rows: customerRowset(150, "F", "1")}
	uc := usecase.NewAlbaranUseCase(fc, nil)

	resp, err := uc.CustomerHeaders(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, resp.Results, 100)
	first, _ := resp.Results[0].Get("cod_cli")
	assert.Equal(t, "C050", first)
	assert.Equal(t, 0, fc.lastMaxRows, "el recorte por cola necesita leer todo")
}

func TestDiagnostic_Primeras10(t *testing.T) {
	rs := &entity.Rowset{Columns: []string{"nom_fis", "fec_fac", "fvt_ppg"}}
	for i := 0; i < 25; i++ {
		rs.Rows = append(rs.Rows, []any{fmt.Sprintf("N%02d", i), "2024-01-01", 1.0})
	}
	fc := &fakeConnector{rows: rs}
	uc := usecase.NewAlbaranUseCase(fc, nil)

	resp, err := uc.Diagnostic(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Results, 10)
	first, _ := resp.Results[0].Get("nom_fis")
	assert.Equal(t, "N00", first)
	assert.Equal(t, 10, fc.lastMaxRows)
	assert.Equal(t, usecase.MsgDiagnostic, resp.Message)
}

func TestSupplierHeaders_Filtros(t *testing.T) {
	fc := &fakeConnector{rows: &entity.Rowset{
		Columns: []string{"cod_pro", "fec_alb", "num_alb", "car_abo", "for_pag", "tot_alb"},
		Rows:    [][]any{{"P1", "2024-01-01", int64(7), false, int64(0), 12.0}},
	}}
	uc := usecase.NewAlbaranUseCase(fc, nil)

	resp, err := uc.SupplierHeaders(context.Background(), "Abono", "Contado")
	require.NoError(t, err)
	assert.Equal(t, []any{false, 0}, fc.lastStmt.Args)
	v, _ := resp.Results[0].Get("tot_alb")
	assert.True(t, v.(decimal.Decimal).Equal(decimal.NewFromInt(-12)))
}

// Filtro inválido: no se abre conexión.
func TestCustomerHeaders_FiltroInvalidoSinConexion(t *testing.T) {
	fc := &fakeConnector{}
	uc := usecase.NewAlbaranUseCase(fc, nil)

	_, err := uc.CustomerHeaders(context.Background(), "Bogus")
	assert.ErrorIs(t, err, domain.ErrInvalidFilter)
	assert.Zero(t, fc.opened)
}

// Fecha imposible: no se abre conexión.
func TestCustomerHeadersByDate_FechaInvalidaSinConexion(t *testing.T) {
	fc := &fakeConnector{}
	uc := usecase.NewAlbaranUseCase(fc, nil)

	_, err := uc.CustomerHeadersByDate(context.Background(), "2024", "2", "30", "")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
	assert.Zero(t, fc.opened)
}

func TestRun_ErroresDeBaseDeDatos(t *testing.T) {
	uc := usecase.NewAlbaranUseCase(&fakeConnector{openErr: errors.New("login failed")}, nil)
	_, err := uc.CustomerHeaders(context.Background(), "")
	assert.Equal(t, domain.KindDatabaseConnection, domain.KindOf(err))

	fc := &fakeConnector{queryErr: errors.New("syntax error")}
	uc = usecase.NewAlbaranUseCase(fc, nil)
	_, err = uc.SupplierHeaders(context.Background(), "", "")
	assert.Equal(t, domain.KindQueryExecution, domain.KindOf(err))
	assert.Equal(t, 1, fc.released, "la conexión se libera también ante error")
}

func TestReady(t *testing.T) {
	assert.NoError(t, usecase.NewAlbaranUseCase(&fakeConnector{}, nil).Ready(context.Background()))
	assert.Error(t, usecase.NewAlbaranUseCase(&fakeConnector{openErr: errors.New("down")}, nil).Ready(context.Background()))
}
