package main

import (
	"database/sql"

	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/xavierca1/ligue-whatsapp/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-whatsapp/internal/infra/queue"
)

// newHealthHandler lida com as dependências opcionais: fila e Redis podem
// estar ausentes em dev e o health precisa refletir isso sem nil panic.
func newHealthHandler(db *sql.DB, rabbitMQ *queue.RabbitMQ, redisClient *redis.Client) *handlers.HealthHandler {
	var conn *amqp091.Connection
	if rabbitMQ != nil {
		conn = rabbitMQ.Conn
	}
	return handlers.NewHealthHandler(db, conn, redisClient)
}
