package dto

import "github.com/jhoicas/albaranes-api/internal/domain/entity"

// StatusSuccess valor de "status" en respuestas correctas.
const StatusSuccess = "success"

// ReportResponse sobre de respuesta de los informes de /api.
type ReportResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Results []entity.Record `json:"results"`
}

// DiagnosticResponse respuesta de la consulta de diagnóstico (sin "status").
type DiagnosticResponse struct {
	Message string          `json:"message"`
	Results []entity.Record `json:"results"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse respuesta de /health y /ready.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
