package entity

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/albaranes-api/internal/domain"
)

// Tipos de documento de albarán de cliente, tal como se guardan en pub.gvalcab.doc_alb.
const (
	DocFactura = "F"
	DocAbono   = "A"
)

// CustomerDocumentType filtro de tipo de albarán de cliente (Factura | Abono).
type CustomerDocumentType struct {
	Label  string
	Stored string
}

var customerDocumentTypes = map[string]string{
	"Factura": DocFactura,
	"Abono":   DocAbono,
}

// ParseCustomerDocumentType mapea la etiqueta externa al valor almacenado.
func ParseCustomerDocumentType(label string) (CustomerDocumentType, error) {
	key := normalizeLabel(label)
	stored, ok := customerDocumentTypes[key]
	if !ok {
		return CustomerDocumentType{}, domain.NewError(domain.KindInvalidFilter,
			"deliveryNoteType inválido: %q (valores permitidos: Factura, Abono)", label)
	}
	return CustomerDocumentType{Label: key, Stored: stored}, nil
}

// SupplierNoteType filtro de tipo de albarán de proveedor (Cargo | Abono).
// En pub.gcalcab.car_abo el cargo se guarda como true y el abono como false.
type SupplierNoteType struct {
	Label    string
	IsCharge bool
}

var supplierNoteTypes = map[string]bool{
	"Cargo": true,
	"Abono": false,
}

// ParseSupplierNoteType mapea la etiqueta externa al valor almacenado.
func ParseSupplierNoteType(label string) (SupplierNoteType, error) {
	key := normalizeLabel(label)
	isCharge, ok := supplierNoteTypes[key]
	if !ok {
		return SupplierNoteType{}, domain.NewError(domain.KindInvalidFilter,
			"deliveryNoteType inválido: %q (valores permitidos: Cargo, Abono)", label)
	}
	return SupplierNoteType{Label: key, IsCharge: isCharge}, nil
}

// Formas de pago de proveedor, tal como se guardan en pub.gcalcab.for_pag.
const (
	PaymentContado = 0
	PaymentCredito = 1
)

// PaymentMethod filtro de forma de pago de proveedor (Crédito | Contado).
type PaymentMethod struct {
	Label  string
	Stored int
}

var paymentMethods = map[string]int{
	"Crédito": PaymentCredito,
	"Contado": PaymentContado,
}

// ParsePaymentMethod mapea la etiqueta externa al valor almacenado.
func ParsePaymentMethod(label string) (PaymentMethod, error) {
	key := normalizeLabel(label)
	stored, ok := paymentMethods[key]
	if !ok {
		return PaymentMethod{}, domain.NewError(domain.KindInvalidFilter,
			"deliveryNotePaymentMethod inválido: %q (valores permitidos: Crédito, Contado)", label)
	}
	return PaymentMethod{Label: key, Stored: stored}, nil
}

// normalizeLabel compone la etiqueta en NFC: "Crédito" puede llegar con la tilde
// como carácter combinante según el cliente que construya la URL.
func normalizeLabel(label string) string {
	return norm.NFC.String(strings.TrimSpace(label))
}

// CustomerDeliveryNote cabecera de albarán de cliente (pub.gvalcab).
// Documenta el contrato de columnas; la respuesta se serializa como Record
// para conservar el orden de la proyección.
type CustomerDeliveryNote struct {
	CustomerCode string          // cod_cli
	DocumentType string          // doc_alb: "F" | "A"
	Date         string          // fec_alb
	CustomerName string          // raz_cli
	Amount       decimal.Decimal // tot_alb, negativo si DocumentType = "A"
}

// SupplierDeliveryNote cabecera de albarán de proveedor (pub.gcalcab).
type SupplierDeliveryNote struct {
	SupplierCode   string          // cod_pro
	Date           string          // fec_alb
	DocumentNumber string          // num_alb
	IsCharge       bool            // car_abo
	PaymentMethod  int             // for_pag: 0 contado, 1 crédito
	Amount         decimal.Decimal // tot_alb, negativo si IsCharge = false
}
