package session_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Helpers for end-to-end tests that run the SDK against a real core in a
 * container rather than an httptest stub. Opt-in: point coreImageEnv at a
 * core image (and coreAPIKeyEnv at its api key if it needs one) to enable
 * the suite; without it every test here skips, so plain `go test ./...`
 * stays Docker-free.
 */

const (
	coreImageEnv  = "SESSIONKIT_E2E_CORE_IMAGE"
	coreAPIKeyEnv = "SESSIONKIT_E2E_CORE_API_KEY"

	corePort = "3567/tcp"
)

// setupCoreContainer starts the configured core image and returns its base
// URL. The container is terminated when the test finishes.
func setupCoreContainer(t *testing.T) string {
	t.Helper()

	image := os.Getenv(coreImageEnv)
	if image == "" {
		t.Skipf("set %s to a core image to run containerized end-to-end tests", coreImageEnv)
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        image,
		ExposedPorts: []string{corePort},
		WaitingFor:   wait.ForListeningPort(corePort).WithStartupTimeout(2 * time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, corePort)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, port.Port())
}
