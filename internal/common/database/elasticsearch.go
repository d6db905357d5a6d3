// internal/common/database/elasticsearch.go
package database

import (
	"context"
	"fmt"

	"jobmatch-workers/internal/common/config"
	"jobmatch-workers/internal/common/errors"

	"github.com/elastic/go-elasticsearch/v8"
)

// ElasticsearchClient wraps the client used by the search-backed job store.
type ElasticsearchClient struct {
	Client    *elasticsearch.Client
	JobsIndex string
}

func NewElasticsearch(cfg config.ElasticsearchConfig) (*ElasticsearchClient, error) {
	esCfg := elasticsearch.Config{
		Addresses: cfg.Addresses,
	}

	if cfg.Username != "" {
		esCfg.Username = cfg.Username
		esCfg.Password = cfg.Password
	}

	es, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	return &ElasticsearchClient{Client: es, JobsIndex: cfg.JobsIndex}, nil
}

// Ping checks the cluster is reachable and that the jobs index exists.
func (c *ElasticsearchClient) Ping(ctx context.Context) error {
	res, err := c.Client.Ping(c.Client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping: %w", errors.NewDatabaseConnectionFailedError(err))
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch ping error: %s", res.Status())
	}

	if c.JobsIndex == "" {
		return nil
	}

	exists, err := c.Client.Indices.Exists([]string{c.JobsIndex}, c.Client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch index check failed: %w", err)
	}
	defer exists.Body.Close()

	if exists.IsError() {
		return fmt.Errorf("elasticsearch index %q unavailable: %s", c.JobsIndex, exists.Status())
	}
	return nil
}
