package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/albaranes-api/internal/application/dto"
	"github.com/jhoicas/albaranes-api/internal/application/query"
	"github.com/jhoicas/albaranes-api/internal/application/shaping"
	"github.com/jhoicas/albaranes-api/internal/domain/entity"
	"github.com/jhoicas/albaranes-api/internal/domain/repository"
	"github.com/jhoicas/albaranes-api/pkg/logger"
)

// Límites de filas por recurso. El diagnóstico recorta por cabeza; los listados de
// clientes y proveedores por cola.
const (
	diagnosticLimit = 10
	headersLimit    = 100
)

// Mensajes del sobre de respuesta.
const (
	MsgDiagnostic            = "Conectado vía ODBC"
	MsgCustomerHeaders       = "Cabeceras de albaranes de clientes"
	MsgCustomerHeadersByDate = "Cabeceras de albaranes de clientes por fecha"
	MsgSupplierHeaders       = "Cabeceras de albaranes de proveedores"
)

// policies política fija de presentación por recurso. No es configurable.
var policies = map[query.Resource]shaping.Policy{
	query.ResourceDiagnostic: {
		NumericColumns: []string{"fvt_ppg"},
		Limit:          diagnosticLimit,
		Truncation:     shaping.TruncateHead,
	},
	query.ResourceCustomerHeaders: {
		SignColumn:      "tot_alb",
		ConditionColumn: "doc_alb",
		IsNegative:      shaping.EqualsText(entity.DocAbono),
		Limit:           headersLimit,
		Truncation:      shaping.TruncateTail,
	},
	query.ResourceCustomerHeadersByDate: {
		SignColumn:      "tot_alb",
		ConditionColumn: "doc_alb",
		IsNegative:      shaping.EqualsText(entity.DocAbono),
	},
	query.ResourceSupplierHeaders: {
		SignColumn:      "tot_alb",
		ConditionColumn: "car_abo",
		IsNegative:      shaping.IsFalse,
		NumericColumns:  []string{"num_alb", "for_pag"},
		Limit:           headersLimit,
		Truncation:      shaping.TruncateTail,
	},
}

// AlbaranUseCase orquesta cada informe:
//   - Validación de filtros y construcción de la sentencia (antes de conectar).
//   - Ejecución dentro de una conexión por petición.
//   - Inversión de signo y recorte según la política del recurso.
type AlbaranUseCase struct {
	connector repository.Connector
	log       *logger.Logger
}

// NewAlbaranUseCase construye el caso de uso.
func NewAlbaranUseCase(connector repository.Connector, log *logger.Logger) *AlbaranUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AlbaranUseCase{connector: connector, log: log}
}

// Diagnostic ejecuta la consulta de diagnóstico y devuelve las primeras 10 filas.
func (uc *AlbaranUseCase) Diagnostic(ctx context.Context) (*dto.DiagnosticResponse, error) {
	records, err := uc.run(ctx, query.ResourceDiagnostic, query.Filters{})
	if err != nil {
		return nil, err
	}
	return &dto.DiagnosticResponse{Message: MsgDiagnostic, Results: records}, nil
}

// CustomerHeaders cabeceras de albaranes de clientes, opcionalmente por tipo.
func (uc *AlbaranUseCase) CustomerHeaders(ctx context.Context, deliveryNoteType string) (*dto.ReportResponse, error) {
	records, err := uc.run(ctx, query.ResourceCustomerHeaders, query.Filters{DeliveryNoteType: deliveryNoteType})
	if err != nil {
		return nil, err
	}
	return report(MsgCustomerHeaders, records), nil
}

// CustomerHeadersByDate cabeceras de albaranes de clientes de una fecha concreta.
// year, month y day llegan tal cual desde la ruta.
func (uc *AlbaranUseCase) CustomerHeadersByDate(ctx context.Context, year, month, day, deliveryNoteType string) (*dto.ReportResponse, error) {
	date, err := entity.ParseDeliveryDate(year, month, day)
	if err != nil {
		return nil, err
	}
	records, err := uc.run(ctx, query.ResourceCustomerHeadersByDate, query.Filters{
		DeliveryNoteType: deliveryNoteType,
		Date:             date,
	})
	if err != nil {
		return nil, err
	}
	return report(MsgCustomerHeadersByDate, records), nil
}

// SupplierHeaders cabeceras de albaranes de proveedores, por tipo y forma de pago opcionales.
func (uc *AlbaranUseCase) SupplierHeaders(ctx context.Context, deliveryNoteType, paymentMethod string) (*dto.ReportResponse, error) {
	records, err := uc.run(ctx, query.ResourceSupplierHeaders, query.Filters{
		DeliveryNoteType:          deliveryNoteType,
		DeliveryNotePaymentMethod: paymentMethod,
	})
	if err != nil {
		return nil, err
	}
	return report(MsgSupplierHeaders, records), nil
}

// Ready comprueba que la base de datos acepta conexiones.
func (uc *AlbaranUseCase) Ready(ctx context.Context) error {
	return uc.connector.Ping(ctx)
}

func (uc *AlbaranUseCase) run(ctx context.Context, resource query.Resource, filters query.Filters) ([]entity.Record, error) {
	stmt, err := query.Build(resource, filters)
	if err != nil {
		return nil, err
	}
	policy := policies[resource]

	// Con recorte por cabeza no hace falta leer más filas que el límite.
	maxRows := 0
	if policy.Truncation == shaping.TruncateHead {
		maxRows = policy.Limit
	}

	start := time.Now()
	var rows *entity.Rowset
	err = uc.connector.WithConnection(ctx, func(q repository.Querier) error {
		var qerr error
		rows, qerr = q.Query(ctx, stmt, maxRows)
		return qerr
	})
	if err != nil {
		return nil, err
	}

	if rows == nil {
		rows = &entity.Rowset{}
	}
	records := shaping.Shape(rows, policy)
	uc.log.Debug().
		Str("resource", string(resource)).
		Int("args", len(stmt.Args)).
		Int("rows", len(rows.Rows)).
		Int("results", len(records)).
		Stringer("policy", policy).
		Dur("elapsed", time.Since(start)).
		Msg("informe generado")
	return records, nil
}

func report(message string, records []entity.Record) *dto.ReportResponse {
	return &dto.ReportResponse{Status: dto.StatusSuccess, Message: message, Results: records}
}
