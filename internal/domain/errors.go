package domain

import (
	"errors"
	"fmt"
)

// Kind clasifica los errores que puede producir la pasarela. El conjunto es cerrado:
// la capa HTTP traduce cada Kind a un código de estado en un único punto.
type Kind int

const (
	KindUnknown            Kind = iota
	KindConfiguration           // variable de entorno ausente o inválida (fatal al arrancar)
	KindDatabaseConnection      // fallo de transporte/autenticación al abrir la conexión
	KindInvalidFilter           // etiqueta de filtro no mapeada
	KindInvalidDate             // año/mes/día que no forman una fecha de calendario
	KindQueryExecution          // la base de datos rechazó la sentencia
)

// String devuelve el nombre del tipo de error.
func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "ConfigurationError"
	case KindDatabaseConnection:
		return "DatabaseConnectionError"
	case KindInvalidFilter:
		return "InvalidFilterError"
	case KindInvalidDate:
		return "InvalidDateError"
	case KindQueryExecution:
		return "QueryExecutionError"
	default:
		return "UnknownError"
	}
}

// IsClientError indica si el error se debe a datos enviados por el consumidor.
func (k Kind) IsClientError() bool {
	return k == KindInvalidFilter || k == KindInvalidDate
}

// Errores de dominio (sin dependencias externas). Sirven como objetivo de errors.Is.
var (
	ErrConfiguration      = &Error{Kind: KindConfiguration, Message: "configuración inválida"}
	ErrDatabaseConnection = &Error{Kind: KindDatabaseConnection, Message: "error de conexión a la base de datos"}
	ErrInvalidFilter      = &Error{Kind: KindInvalidFilter, Message: "filtro inválido"}
	ErrInvalidDate        = &Error{Kind: KindInvalidDate, Message: "fecha inválida"}
	ErrQueryExecution     = &Error{Kind: KindQueryExecution, Message: "error ejecutando la consulta"}
)

// Error es el error tipado de la pasarela.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Is compara por Kind, de modo que errors.Is(err, domain.ErrInvalidDate) funcione
// con cualquier *Error del mismo tipo.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewError construye un *Error con mensaje formateado.
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError envuelve err con el Kind indicado. Si err es nil devuelve nil.
func WrapError(kind Kind, err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf devuelve el Kind del primer *Error en la cadena, o KindUnknown.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}
