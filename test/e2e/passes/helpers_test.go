package passes_test

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/eventpass/pkg/passsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for pass service end-to-end tests.
 * This includes container setup, service operations, and assertions.
 */

const (
	testImageName = "eventpass-test:latest"

	jwtSecret = "e2e-secret-0123456789abcdef01234567"
)

// TestMain builds the Docker image once before all tests and removes it
// after. With -short nothing is built and every test skips itself.
func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	fmt.Fprintf(os.Stdout, "Building Pass Service Docker image...")
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Pass Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/passes/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	cmd := exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupPassContainer starts the service with relaxed rate limits and returns
// its base URL.
func setupPassContainer(t *testing.T) (string, func()) {
	t.Helper()

	return startContainer(t, map[string]string{
		// Tests make many rapid requests which would otherwise hit the strict limits
		"RATELIMIT_STRICT_REQUESTS":   "1000",
		"RATELIMIT_STRICT_WINDOW_SEC": "60",
		"RATELIMIT_STRICT_BURST":      "1000",
	})
}

// setupPassContainerWithDefaultRateLimits keeps the production limits, for
// the rate limit tests only.
func setupPassContainerWithDefaultRateLimits(t *testing.T) (string, func()) {
	t.Helper()

	return startContainer(t, nil)
}

func startContainer(t *testing.T, extraEnv map[string]string) (string, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	env := map[string]string{
		"JWT_SECRET":    jwtSecret,
		"JWT_ISSUER":    "eventpass-e2e",
		"DATABASE_FILE": "/data/passes.db",
		"ENV":           "test",
		"LOG_LEVEL":     "info",
		"LOG_FORMAT":    "json",
	}
	for k, v := range extraEnv {
		env[k] = v
	}

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"3000/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("3000/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "3000")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// registerUser registers a user and returns an authenticated session.
func registerUser(t *testing.T, client *passsdk.SDKClient, name, phone, email string) *passsdk.Session {
	t.Helper()

	session, err := client.Register(t.Context(), passsdk.RegisterRequest{Name: name, Phone: phone, Email: email})
	require.NoError(t, err)
	require.NotEmpty(t, session.Token())
	return session
}

// createEvent creates "Conf" with the given limits.
func createEvent(t *testing.T, session *passsdk.Session, gold, silver, platinum int64) int64 {
	t.Helper()

	name, date, location := "Conf", "2025-06-01T18:00:00Z", "Hall A"
	id, err := session.CreateEvent(t.Context(), passsdk.EventRequest{
		Name:              &name,
		Date:              &date,
		Location:          &location,
		GoldPassLimit:     &gold,
		SilverPassLimit:   &silver,
		PlatinumPassLimit: &platinum,
	})
	require.NoError(t, err)
	return id
}

// requireAPIError asserts err is an *passsdk.APIError with the given status.
func requireAPIError(t *testing.T, err error, status int) *passsdk.APIError {
	t.Helper()

	require.Error(t, err)
	var apiErr *passsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode, apiErr.Error())
	return apiErr
}

func assertHealthy(t *testing.T, health *passsdk.HealthResponse, err error) {
	t.Helper()

	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
	require.NotEmpty(t, health.Uptime)
	require.NotEmpty(t, health.Version)
}
