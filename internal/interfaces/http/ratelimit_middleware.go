package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/jhoicas/albaranes-api/internal/application/dto"
)

// maxTrackedClients tope de limitadores en memoria antes de purgar inactivos.
const maxTrackedClients = 10_000

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter limita peticiones por consumidor (o por IP si no hay autenticación).
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	rate    rate.Limit
	burst   int
	idleTTL time.Duration
}

// NewRateLimiter crea el limitador con rps peticiones por segundo y ráfaga burst.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		clients: make(map[string]*clientLimiter),
		rate:    rate.Limit(rps),
		burst:   burst,
		idleTTL: 10 * time.Minute,
	}
}

func (rl *RateLimiter) get(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if len(rl.clients) >= maxTrackedClients {
		for k, cl := range rl.clients {
			if now.Sub(cl.lastSeen) > rl.idleTTL {
				delete(rl.clients, k)
			}
		}
	}
	cl, ok := rl.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.clients[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}

// Handler devuelve el middleware de Fiber. Responde 429 al superar el límite.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := GetConsumer(c)
		if key == "" {
			key = c.IP()
		}
		if !rl.get(key).Allow() {
			c.Set(fiber.HeaderRetryAfter, "1")
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Detail: "límite de peticiones excedido"})
		}
		return c.Next()
	}
}
