package query

import (
	"fmt"
	"strings"

	"github.com/jhoicas/albaranes-api/internal/domain/entity"
)

// Resource recurso lógico expuesto por la pasarela.
type Resource string

const (
	ResourceDiagnostic            Resource = "diagnostic"
	ResourceCustomerHeaders       Resource = "customer-headers"
	ResourceCustomerHeadersByDate Resource = "customer-headers-by-date"
	ResourceSupplierHeaders       Resource = "supplier-headers"
)

// Proyecciones fijas por recurso. Ni columnas ni tabla dependen del consumidor.
const (
	diagnosticSelect     = "SELECT nom_fis, fec_fac, fvt_ppg FROM pub.gmtesoc"
	customerHeaderSelect = "SELECT cod_cli, doc_alb, fec_alb, raz_cli, tot_alb FROM pub.gvalcab"
	supplierHeaderSelect = "SELECT cod_pro, fec_alb, num_alb, car_abo, for_pag, tot_alb FROM pub.gcalcab"
)

// Filters filtros opcionales recibidos del consumidor. Las etiquetas llegan sin
// mapear; Build las traduce a valores almacenados o falla con InvalidFilterError.
type Filters struct {
	DeliveryNoteType          string // Factura|Abono (clientes), Cargo|Abono (proveedores)
	DeliveryNotePaymentMethod string // Crédito|Contado (proveedores)
	Date                      entity.DeliveryDate
}

// predicate par (plantilla, valor ligado).
type predicate struct {
	template string
	value    any
}

// predicateFunc produce el predicado de un filtro; ok=false si el filtro no está activo.
type predicateFunc func(f Filters) (p predicate, ok bool, err error)

// resourceDef sentencia base y filtros declarados, en orden, de un recurso.
type resourceDef struct {
	base    string
	filters []predicateFunc
}

var resources = map[Resource]resourceDef{
	ResourceDiagnostic: {base: diagnosticSelect},
	ResourceCustomerHeaders: {
		base:    customerHeaderSelect,
		filters: []predicateFunc{customerDocumentType},
	},
	ResourceCustomerHeadersByDate: {
		base:    customerHeaderSelect,
		filters: []predicateFunc{deliveryDate, customerDocumentType},
	},
	ResourceSupplierHeaders: {
		base:    supplierHeaderSelect,
		filters: []predicateFunc{supplierNoteType, supplierPaymentMethod},
	},
}

// Build genera la sentencia parametrizada del recurso con los filtros activos.
// Los valores sólo viajan en Statement.Args.
func Build(resource Resource, f Filters) (entity.Statement, error) {
	def, ok := resources[resource]
	if !ok {
		return entity.Statement{}, fmt.Errorf("query: recurso desconocido %q", resource)
	}

	preds := make([]predicate, 0, len(def.filters))
	for _, fn := range def.filters {
		p, active, err := fn(f)
		if err != nil {
			return entity.Statement{}, err
		}
		if active {
			preds = append(preds, p)
		}
	}
	return assemble(def.base, preds), nil
}

func assemble(base string, preds []predicate) entity.Statement {
	if len(preds) == 0 {
		return entity.Statement{SQL: base}
	}
	clauses := make([]string, len(preds))
	args := make([]any, len(preds))
	for i, p := range preds {
		clauses[i] = p.template
		args[i] = p.value
	}
	return entity.Statement{
		SQL:  base + " WHERE " + strings.Join(clauses, " AND "),
		Args: args,
	}
}

func customerDocumentType(f Filters) (predicate, bool, error) {
	if f.DeliveryNoteType == "" {
		return predicate{}, false, nil
	}
	t, err := entity.ParseCustomerDocumentType(f.DeliveryNoteType)
	if err != nil {
		return predicate{}, false, err
	}
	return predicate{template: "doc_alb = ?", value: t.Stored}, true, nil
}

func deliveryDate(f Filters) (predicate, bool, error) {
	if f.Date.IsZero() {
		return predicate{}, false, nil
	}
	return predicate{template: "fec_alb = TO_DATE(?, 'YYYY-MM-DD')", value: f.Date.ISO()}, true, nil
}

func supplierNoteType(f Filters) (predicate, bool, error) {
	if f.DeliveryNoteType == "" {
		return predicate{}, false, nil
	}
	t, err := entity.ParseSupplierNoteType(f.DeliveryNoteType)
	if err != nil {
		return predicate{}, false, err
	}
	return predicate{template: "car_abo = ?", value: t.IsCharge}, true, nil
}

func supplierPaymentMethod(f Filters) (predicate, bool, error) {
	if f.DeliveryNotePaymentMethod == "" {
		return predicate{}, false, nil
	}
	m, err := entity.ParsePaymentMethod(f.DeliveryNotePaymentMethod)
	if err != nil {
		return predicate{}, false, err
	}
	return predicate{template: "for_pag = ?", value: m.Stored}, true, nil
}
