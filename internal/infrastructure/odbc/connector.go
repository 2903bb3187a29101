package odbc

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jhoicas/albaranes-api/internal/domain"
	"github.com/jhoicas/albaranes-api/internal/domain/repository"
	"github.com/jhoicas/albaranes-api/internal/infrastructure/metrics"
	"github.com/jhoicas/albaranes-api/pkg/config"
	"github.com/jhoicas/albaranes-api/pkg/logger"
)

// DriverName nombre con el que github.com/alexbrainman/odbc se registra en database/sql.
// El import del driver vive en cmd/api (cgo + unixODBC), así los tests no lo requieren.
const DriverName = "odbc"

var _ repository.Connector = (*Connector)(nil)

// Open prepara el *sql.DB sobre el driver ODBC. No abre ninguna conexión:
// la primera se establece en WithConnection o Ping.
func Open(cfg config.ODBCConfig) (*sql.DB, error) {
	db, err := sql.Open(DriverName, cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("abrir driver odbc: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

// Connector entrega una conexión por petición sobre un *sql.DB.
// Con MaxIdleConns = 0 cada conexión se cierra físicamente al liberarse.
type Connector struct {
	db           *sql.DB
	queryTimeout time.Duration
	log          *logger.Logger
}

// Option configura el Connector.
type Option func(*Connector)

// WithQueryTimeout limita la duración de cada consulta.
func WithQueryTimeout(d time.Duration) Option {
	return func(c *Connector) { c.queryTimeout = d }
}

// WithLogger asigna el logger (por defecto descarta).
func WithLogger(l *logger.Logger) Option {
	return func(c *Connector) { c.log = l }
}

// NewConnector construye el adaptador.
func NewConnector(db *sql.DB, opts ...Option) *Connector {
	c := &Connector{db: db, log: logger.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithConnection adquiere una conexión, ejecuta fn y la libera exactamente una vez,
// también si fn devuelve error o entra en pánico. Sólo los fallos de apertura y
// cierre se traducen a DatabaseConnectionError; el error de fn se devuelve intacto.
func (c *Connector) WithConnection(ctx context.Context, fn func(q repository.Querier) error) (err error) {
	conn, err := c.db.Conn(ctx)
	if err != nil {
		metrics.ObserveConnection("error")
		c.log.Error().Err(err).Msg("apertura de conexión ODBC")
		return domain.WrapError(domain.KindDatabaseConnection, err, "error de conexión a la base de datos")
	}
	metrics.ObserveConnection("ok")

	defer func() {
		if cerr := conn.Close(); cerr != nil {
			c.log.Warn().Err(cerr).Msg("cierre de conexión ODBC")
			if err == nil {
				err = domain.WrapError(domain.KindDatabaseConnection, cerr, "error cerrando la conexión")
			}
		}
	}()

	return fn(&querier{conn: conn, timeout: c.queryTimeout})
}

// Ping verifica que la base de datos responde (usado por /ready).
func (c *Connector) Ping(ctx context.Context) error {
	if err := c.db.PingContext(ctx); err != nil {
		return domain.WrapError(domain.KindDatabaseConnection, err, "error de conexión a la base de datos")
	}
	return nil
}
