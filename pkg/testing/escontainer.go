// Package testing starts the backend dependencies of integration tests.
package testing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/elastictea/pkg/es"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/elasticsearch"
	"github.com/testcontainers/testcontainers-go/wait"
)

const elasticsearchImage = "docker.elastic.co/elasticsearch/elasticsearch:8.15.0"

// Cluster is a single node Elasticsearch with security disabled.
type Cluster struct {
	Container testcontainers.Container
	Address   string
}

// StartCluster runs a throwaway node and terminates it when tb finishes.
// Callers are expected to skip in short mode before calling it.
func StartCluster(ctx context.Context, tb testing.TB) *Cluster {
	tb.Helper()

	container, err := elasticsearch.Run(ctx,
		elasticsearchImage,
		testcontainers.WithEnv(map[string]string{
			"xpack.security.enabled": "false",
			"ES_JAVA_OPTS":           "-Xms512m -Xmx512m",
		}),
		testcontainers.WithWaitStrategy(
			wait.ForHTTP("/_cluster/health").
				WithPort("9200").
				WithStartupTimeout(90*time.Second),
		),
	)
	if err != nil {
		tb.Fatalf("failed to start elasticsearch container: %v", err)
	}

	tb.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			tb.Logf("failed to terminate elasticsearch container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		tb.Fatalf("failed to get elasticsearch host: %v", err)
	}

	port, err := container.MappedPort(ctx, "9200")
	if err != nil {
		tb.Fatalf("failed to get elasticsearch port: %v", err)
	}

	return &Cluster{
		Container: container,
		Address:   fmt.Sprintf("http://%s:%s", host, port.Port()),
	}
}

// Client connects to the cluster, failing tb if it does not answer.
func (c *Cluster) Client(ctx context.Context, tb testing.TB) *es.Client {
	tb.Helper()

	client, err := es.NewClient(es.Config{Addresses: []string{c.Address}})
	if err != nil {
		tb.Fatalf("failed to create elasticsearch client: %v", err)
	}
	if err := client.Ping(ctx); err != nil {
		tb.Fatalf("elasticsearch did not answer: %v", err)
	}
	return client
}
