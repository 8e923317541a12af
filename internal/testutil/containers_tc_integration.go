//go:build integration

package testutil

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"
	"github.com/testcontainers/testcontainers-go/wait"
)

var tcLogger = log.New(os.Stdout, "[tc] ", log.LstdFlags)

func shortID(c tc.Container) string {
	id := c.GetContainerID()
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

// lifecycleHooks — пишет этапы жизни контейнера в tcLogger.
func lifecycleHooks(l *log.Logger) tc.ContainerLifecycleHooks {
	stage := func(name string) tc.ContainerHook {
		return func(_ context.Context, c tc.Container) error {
			l.Printf("%s id=%s", name, shortID(c))
			return nil
		}
	}
	return tc.ContainerLifecycleHooks{
		PreCreates: []tc.ContainerRequestHook{
			func(_ context.Context, req tc.ContainerRequest) error {
				l.Printf("creating image=%s", req.Image)
				return nil
			},
		},
		PostStarts:     []tc.ContainerHook{stage("started")},
		PostReadies:    []tc.ContainerHook{stage("ready")},
		PreTerminates:  []tc.ContainerHook{stage("terminating")},
		PostTerminates: []tc.ContainerHook{stage("terminated")},
	}
}

// ---- Postgres ----

type PGContainer struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	DSN       string
}

func StartPostgresTC(ctx context.Context) (*PGContainer, func(context.Context) error, error) {
	pg, err := postgres.Run(
		ctx,
		"postgres:16-alpine",
		tc.WithLifecycleHooks(lifecycleHooks(tcLogger)),
		tc.WithExposedPorts("5432/tcp"),
		postgres.WithDatabase("larek"),
		postgres.WithUsername("larek"),
		postgres.WithPassword("larek"),
		tc.WithWaitStrategy(
			wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections"),
			).WithDeadline(60*time.Second),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run postgres: %w", err)
	}

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pg.Terminate(ctx)
		return nil, nil, fmt.Errorf("conn string: %w", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		_ = pg.Terminate(ctx)
		return nil, nil, fmt.Errorf("new pool: %w", err)
	}

	stop := func(c context.Context) error {
		pool.Close()
		return pg.Terminate(c)
	}
	return &PGContainer{Container: pg, DSN: dsn, Pool: pool}, stop, nil
}

// MigratedPostgres — поднимает Postgres, накатывает миграции и регистрирует остановку в t.Cleanup.
func MigratedPostgres(t *testing.T) *PGContainer {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pg, stop, err := StartPostgresTC(ctx)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = stop(context.Background()) })

	if err := ApplyMigrationsGoose(pg.DSN); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	return pg
}

// ---- Kafka (redpanda) ----

type KafkaEnv struct {
	Container *redpanda.Container
	Brokers   []string
	BaseTopic string
}

func StartKafkaTC(ctx context.Context, baseTopic string) (*KafkaEnv, func(context.Context) error, error) {
	rp, err := redpanda.Run(
		ctx,
		"docker.redpanda.com/redpandadata/redpanda:v23.3.8",
		tc.WithLifecycleHooks(lifecycleHooks(tcLogger)),
		redpanda.WithAutoCreateTopics(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run redpanda: %w", err)
	}

	seed, err := rp.KafkaSeedBroker(ctx)
	if err != nil {
		_ = tc.TerminateContainer(rp)
		return nil, nil, fmt.Errorf("seed broker: %w", err)
	}

	env := &KafkaEnv{Container: rp, Brokers: []string{seed}, BaseTopic: baseTopic}
	stop := func(_ context.Context) error { return tc.TerminateContainer(rp) }
	return env, stop, nil
}

// ---- Redis ----

type RedisEnv struct {
	Container *tcredis.RedisContainer
	Addr      string // host:port
}

func StartRedisTC(ctx context.Context) (*RedisEnv, func(context.Context) error, error) {
	rc, err := tcredis.Run(
		ctx,
		"redis:7-alpine",
		tc.WithLifecycleHooks(lifecycleHooks(tcLogger)),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run redis: %w", err)
	}

	addr, err := rc.Endpoint(ctx, "")
	if err != nil {
		_ = tc.TerminateContainer(rc)
		return nil, nil, fmt.Errorf("redis endpoint: %w", err)
	}

	stop := func(_ context.Context) error { return tc.TerminateContainer(rc) }
	return &RedisEnv{Container: rc, Addr: addr}, stop, nil
}
