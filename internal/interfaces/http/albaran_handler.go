package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/albaranes-api/internal/application/usecase"
	"github.com/jhoicas/albaranes-api/internal/domain"
	"github.com/jhoicas/albaranes-api/pkg/logger"
)

// Parámetros de consulta expuestos.
const (
	queryDeliveryNoteType = "deliveryNoteType"
	queryPaymentMethod    = "deliveryNotePaymentMethod"
	paramYear             = "year"
	paramMonth            = "month"
	paramDay              = "day"
)

// AlbaranHandler maneja los endpoints de informes de albaranes.
type AlbaranHandler struct {
	uc  *usecase.AlbaranUseCase
	log *logger.Logger
}

// NewAlbaranHandler construye el handler.
func NewAlbaranHandler(uc *usecase.AlbaranUseCase, log *logger.Logger) *AlbaranHandler {
	return &AlbaranHandler{uc: uc, log: log}
}

// Diagnostic godoc
// @Summary      Consulta de diagnóstico
// @Description  Ejecuta una consulta fija contra pub.gmtesoc y devuelve las primeras 10 filas.
// @Tags         diagnóstico
// @Produce      json
// @Success      200  {object}  dto.DiagnosticResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /test [get]
func (h *AlbaranHandler) Diagnostic(c *fiber.Ctx) error {
	resp, err := h.uc.Diagnostic(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(resp)
}

// CustomerHeaders godoc
// @Summary      Cabeceras de albaranes de clientes
// @Description  Últimas 100 cabeceras de pub.gvalcab. Los abonos se devuelven con importe negativo.
// @Tags         clientes
// @Produce      json
// @Param        deliveryNoteType  query  string  false  "Factura | Abono"
// @Success      200  {object}  dto.ReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/albaranes/clientes/cabeceras [get]
func (h *AlbaranHandler) CustomerHeaders(c *fiber.Ctx) error {
	noteType, err := optionalQuery(c, queryDeliveryNoteType)
	if err != nil {
		return h.fail(c, err)
	}
	resp, err := h.uc.CustomerHeaders(c.UserContext(), noteType)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(resp)
}

// CustomerHeadersByDate godoc
// @Summary      Cabeceras de albaranes de clientes de una fecha
// @Description  Cabeceras de pub.gvalcab con fec_alb igual a la fecha indicada, sin recorte.
// @Tags         clientes
// @Produce      json
// @Param        year              path   string  true   "Año (YYYY)"
// @Param        month             path   string  true   "Mes (MM)"
// @Param        day               path   string  true   "Día (DD)"
// @Param        deliveryNoteType  query  string  false  "Factura | Abono"
// @Success      200  {object}  dto.ReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/albaranes/clientes/cabeceras/{year}/{month}/{day} [get]
func (h *AlbaranHandler) CustomerHeadersByDate(c *fiber.Ctx) error {
	noteType, err := optionalQuery(c, queryDeliveryNoteType)
	if err != nil {
		return h.fail(c, err)
	}
	resp, err := h.uc.CustomerHeadersByDate(c.UserContext(),
		c.Params(paramYear), c.Params(paramMonth), c.Params(paramDay),
		noteType,
	)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(resp)
}

// SupplierHeaders godoc
// @Summary      Cabeceras de albaranes de proveedores
// @Description  Últimas 100 cabeceras de pub.gcalcab. Los abonos (car_abo = false) se devuelven con importe negativo.
// @Tags         proveedores
// @Produce      json
// @Param        deliveryNoteType           query  string  false  "Cargo | Abono"
// @Param        deliveryNotePaymentMethod  query  string  false  "Crédito | Contado"
// @Success      200  {object}  dto.ReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/albaranes/proveedores/cabeceras/ [get]
func (h *AlbaranHandler) SupplierHeaders(c *fiber.Ctx) error {
	noteType, err := optionalQuery(c, queryDeliveryNoteType)
	if err != nil {
		return h.fail(c, err)
	}
	payment, err := optionalQuery(c, queryPaymentMethod)
	if err != nil {
		return h.fail(c, err)
	}
	resp, err := h.uc.SupplierHeaders(c.UserContext(), noteType, payment)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(resp)
}

// optionalQuery lee un filtro opcional. Ausente equivale a "sin filtro"; presente
// pero vacío (?deliveryNoteType=) es un filtro inválido.
func optionalQuery(c *fiber.Ctx, key string) (string, error) {
	if !c.Context().QueryArgs().Has(key) {
		return "", nil
	}
	v := c.Query(key)
	if strings.TrimSpace(v) == "" {
		return "", domain.NewError(domain.KindInvalidFilter, "%s vacío: omita el parámetro o indique un valor", key)
	}
	return v, nil
}

func (h *AlbaranHandler) fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	ev := h.log.Warn()
	if status >= fiber.StatusInternalServerError {
		ev = h.log.Error()
	}
	ev.Err(err).
		Str("request_id", GetRequestID(c)).
		Str("path", c.Path()).
		Int("status", status).
		Msg("informe fallido")
	return respondError(c, err)
}
