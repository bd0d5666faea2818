package pushgateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const gatewayPort = nat.Port("9091/tcp")

// initializePushgateway starts a prom/pushgateway container and returns its
// base URL.
func initializePushgateway(ctx context.Context, t *testing.T) (string, testcontainers.Container) {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        "prom/pushgateway:v1.11.1",
		ExposedPorts: []string{string(gatewayPort)},
		WaitingFor:   wait.ForHTTP("/-/ready").WithPort(gatewayPort).WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, gatewayPort)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, port.Port()), container
}

// TestPushgatewayIntegration pushes a real snapshot and reads it back from
// the gateway's own exposition endpoint.
func TestPushgatewayIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	url, container := initializePushgateway(ctx, t)
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}()

	reg := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests.",
	}, []string{"route", "method", "status"})
	reg.MustRegister(requests)
	requests.WithLabelValues("/users/#val", "GET", "200").Add(3)

	results := &resultLog{}
	s := NewScheduler(Config{
		URL:      url,
		JobName:  "redmetrics-it",
		Interval: 200 * time.Millisecond,
		Grouping: map[string]string{"instance": "it-1"},
	}, reg, nil).WithCallback(results.callback)
	s.Start()

	require.Eventually(t, func() bool {
		for _, r := range results.all() {
			if r.OK() {
				return true
			}
		}
		return false
	}, 10*time.Second, 50*time.Millisecond)
	require.NoError(t, s.Stop(ctx))

	resp, err := http.Get(url + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.True(t, strings.Contains(text, `http_requests_total{instance="it-1",job="redmetrics-it",method="GET",route="/users/#val",status="200"} 3`), text)
}
