package infra

import (
	"fmt"

	"github.com/crmlite/customers/internal/config"
	"github.com/elastic/go-elasticsearch/v8"
)

func Elasticsearch(cfg config.ElasticsearchCfg) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.Address()},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build search client - %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("didn't get response from search index after sending info request - %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search index responded with %s", res.Status())
	}
	return client, nil
}
