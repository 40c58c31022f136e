//go:build integration

// Package testutil levanta dependencias reales en contenedores para los tests de integración.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startContainer(t *testing.T, req testcontainers.ContainerRequest, port string) (host, mapped string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cleanupCancel()
		_ = container.Terminate(cleanupCtx)
	})

	host, err = container.Host(ctx)
	require.NoError(t, err)
	p, err := container.MappedPort(ctx, port)
	require.NoError(t, err)
	return host, p.Port()
}

// StartRabbitMQ levanta RabbitMQ y devuelve una conexión lista.
func StartRabbitMQ(t *testing.T) *amqp.Connection {
	t.Helper()
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "rabbitmq:3.13-alpine",
		ExposedPorts: []string{"5672/tcp"},
		WaitingFor:   wait.ForListeningPort("5672/tcp").WithStartupTimeout(90 * time.Second),
	}, "5672")

	conn, err := amqp.DialConfig("amqp://"+host+":"+port+"/", amqp.Config{
		Dial: amqp.DefaultDial(10 * time.Second),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// StartRedis levanta Redis y devuelve su dirección host:port.
func StartRedis(t *testing.T) string {
	t.Helper()
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
	}, "6379")
	return host + ":" + port
}

// StartPostgres levanta PostgreSQL y devuelve el DSN.
func StartPostgres(t *testing.T) string {
	t.Helper()
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "funko",
			"POSTGRES_PASSWORD": "funko",
			"POSTGRES_DB":       "tienda",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(90 * time.Second),
	}, "5432")
	return fmt.Sprintf("postgres://funko:funko@%s:%s/tienda?sslmode=disable", host, port)
}
