package ratelimit

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/xavierca1/ligue-whatsapp/internal/infra/cache"
)

// Limiter conta operações por identificador em janela fixa, usando a mesma
// fachada de cache da configuração. O incremento é atômico na camada de
// storage: nunca um get/set separado.
type Limiter struct {
	cache  cache.Cache
	prefix string
}

func New(c cache.Cache) *Limiter {
	return &Limiter{cache: c, prefix: "ratelimit"}
}

// Check devolve true enquanto o identificador ainda tem cota na janela
// corrente. No limite, devolve false sem incrementar o contador.
//
// Indisponibilidade do cache libera a passagem (fail-open): barrar todo
// envio porque o Redis caiu seria pior que deixar a cota estourar.
func (l *Limiter) Check(ctx context.Context, identifier string, maxRequests int, window time.Duration) bool {
	if maxRequests <= 0 || window <= 0 {
		return true
	}

	key := l.prefix + ":" + identifier
	_, allowed, err := l.cache.IncrementWithLimit(ctx, key, int64(maxRequests), window)
	if err != nil {
		log.Printf("⚠️ ratelimit: contador indisponível para %s: %v", identifier, err)
		return true
	}

	return allowed
}

// Remaining informa quanto resta da cota na janela corrente, para headers
// de resposta e telas de admin. Best effort: erro de cache devolve a cota
// cheia.
func (l *Limiter) Remaining(ctx context.Context, identifier string, maxRequests int) int {
	raw, ok, err := l.cache.Get(ctx, l.prefix+":"+identifier)
	if err != nil || !ok {
		return maxRequests
	}

	count, err := strconv.Atoi(raw)
	if err != nil {
		return maxRequests
	}

	if count >= maxRequests {
		return 0
	}
	return maxRequests - count
}
