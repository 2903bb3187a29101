package repository

import (
	"context"

	"github.com/jhoicas/albaranes-api/internal/domain/entity"
)

// Querier ejecuta sentencias de solo lectura sobre una conexión ya abierta.
// maxRows > 0 detiene la lectura tras esa cantidad de filas.
type Querier interface {
	Query(ctx context.Context, stmt entity.Statement, maxRows int) (*entity.Rowset, error)
}

// Connector define el puerto de acceso a la base de datos heredada.
// WithConnection abre una conexión para la duración de fn y la libera exactamente
// una vez en cualquier salida; los errores devueltos por fn no se alteran.
type Connector interface {
	WithConnection(ctx context.Context, fn func(q Querier) error) error
	Ping(ctx context.Context) error
}
