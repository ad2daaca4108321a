package cache

import (
	"context"
	"time"
)

// Cache é a fachada de cache com TTL por chave usada pelo config.Store e
// pelo rate limiter. As implementações (Redis, memória) são injetadas na
// montagem, nada de singleton de processo.
type Cache interface {
	// Get devolve o valor e se a chave existe (e não expirou).
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	// IncrementWithLimit é o check-and-increment atômico do contador de rate
	// limit: se o valor atual já atingiu limit, devolve (atual, false) sem
	// incrementar; senão incrementa, arma o TTL na primeira escrita da janela
	// e devolve (novo valor, true). Nunca é um par get/set separado.
	IncrementWithLimit(ctx context.Context, key string, limit int64, window time.Duration) (int64, bool, error)
}
