//go:build integration

// Package testinfra starts throwaway MongoDB and Redis containers for the
// integration tests (go test -tags integration ./...).
package testinfra

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	MongoImage = "mongo:7"
	RedisImage = "redis:7-alpine"

	mongoPort = "27017/tcp"
	redisPort = "6379/tcp"
)

// SkipIfNoDocker skips the test when no Docker daemon is reachable.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if exec.CommandContext(ctx, "docker", "info").Run() != nil {
		t.Skip("Skipping test: Docker not available")
	}
}

// StartMongo runs a MongoDB container for the life of the test and returns
// its connection URI.
func StartMongo(t *testing.T) string {
	t.Helper()
	return start(t, testcontainers.ContainerRequest{
		Image:        MongoImage,
		ExposedPorts: []string{mongoPort},
		WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(90 * time.Second),
	}, "mongodb")
}

// StartRedis runs a Redis container and returns its host:port address.
func StartRedis(t *testing.T) string {
	t.Helper()
	return start(t, testcontainers.ContainerRequest{
		Image:        RedisImage,
		ExposedPorts: []string{redisPort},
		WaitingFor:   wait.ForListeningPort(redisPort).WithStartupTimeout(60 * time.Second),
	}, "")
}

// start runs req and returns the endpoint of its first exposed port, prefixed
// with scheme:// unless scheme is empty.
func start(t *testing.T, req testcontainers.ContainerRequest, scheme string) string {
	t.Helper()
	SkipIfNoDocker(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("start %s: %v", req.Image, err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	endpoint, err := container.Endpoint(ctx, scheme)
	if err != nil {
		t.Fatalf("container endpoint: %v", err)
	}
	return endpoint
}
