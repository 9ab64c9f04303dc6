package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/golang/glog"

	"github.com/null8bit/log-archive-processor/types"
)

// ElasticSink is a Sink backed by an Elasticsearch cluster. It health-checks
// the cluster on construction and lazily creates its two indices
// (credentials and cookie bundles) the first time each is needed.
type ElasticSink struct {
	client            *elasticsearch.Client
	credentialsIndex  string
	cookieBundleIndex string
	ensured           map[string]bool
}

// NewElasticSink connects to addrs, verifies the cluster is healthy, and
// returns a ready-to-use ElasticSink. It returns
// types.SinkUnavailableError if the cluster cannot be reached or reports
// an unhealthy status.
func NewElasticSink(addrs []string, credentialsIndex, cookieBundleIndex string) (*ElasticSink, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: addrs})
	if err != nil {
		return nil, types.SinkUnavailableError.NewWith(fmt.Sprintf("cannot build elasticsearch client: %v", err))
	}

	res, err := client.Cat.Health()
	if err != nil {
		return nil, types.SinkUnavailableError.NewWith(fmt.Sprintf("elasticsearch health check failed: %v", err))
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, types.SinkUnavailableError.NewWith(fmt.Sprintf("elasticsearch unhealthy: %s", res.Status()))
	}

	glog.V(1).Infof("elasticsearch cluster healthy: %s", res.Status())

	return &ElasticSink{
		client:            client,
		credentialsIndex:  credentialsIndex,
		cookieBundleIndex: cookieBundleIndex,
		ensured:           make(map[string]bool),
	}, nil
}

func (s *ElasticSink) ensureIndex(index string) error {
	if s.ensured[index] {
		return nil
	}

	existsRes, err := s.client.Indices.Exists([]string{index})
	if err != nil {
		return types.SinkUnavailableError.NewWith(fmt.Sprintf("cannot check index %s: %v", index, err))
	}
	defer existsRes.Body.Close()

	if existsRes.StatusCode == 200 {
		s.ensured[index] = true
		return nil
	}

	createRes, err := s.client.Indices.Create(index)
	if err != nil {
		return types.SinkUnavailableError.NewWith(fmt.Sprintf("cannot create index %s: %v", index, err))
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return types.SinkUnavailableError.NewWith(fmt.Sprintf("cannot create index %s: %s", index, createRes.Status()))
	}

	glog.V(1).Infof("created index %s", index)
	s.ensured[index] = true
	return nil
}

func (s *ElasticSink) bulkInsert(ctx context.Context, index string, docs []interface{}) error {
	if err := s.ensureIndex(index); err != nil {
		return err
	}

	indexer, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:  index,
		Client: s.client,
	})
	if err != nil {
		return types.SinkUnavailableError.NewWith(fmt.Sprintf("cannot build bulk indexer for %s: %v", index, err))
	}

	var firstErr error
	for _, doc := range docs {
		payload, err := json.Marshal(doc)
		if err != nil {
			return types.SinkUnavailableError.NewWith(fmt.Sprintf("cannot marshal document for %s: %v", index, err))
		}

		err = indexer.Add(ctx, esutil.BulkIndexerItem{
			Action: "index",
			Body:   bytes.NewReader(payload),
			OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, resp esutil.BulkIndexerResponseItem, err error) {
				if firstErr == nil {
					if err != nil {
						firstErr = err
					} else {
						firstErr = fmt.Errorf("bulk index failure: %s", resp.Error.Reason)
					}
				}
			},
		})
		if err != nil {
			return types.SinkUnavailableError.NewWith(fmt.Sprintf("cannot enqueue document for %s: %v", index, err))
		}
	}

	if err := indexer.Close(ctx); err != nil {
		return types.SinkUnavailableError.NewWith(fmt.Sprintf("bulk indexer close failed for %s: %v", index, err))
	}

	stats := indexer.Stats()
	glog.V(2).Infof("bulk indexed %d/%d documents into %s", stats.NumFlushed, stats.NumAdded, index)

	if firstErr != nil {
		return types.SinkUnavailableError.NewWith(fmt.Sprintf("bulk insert into %s had failures: %v", index, firstErr))
	}

	return nil
}

// BulkInsertCredentials implements Sink.
func (s *ElasticSink) BulkInsertCredentials(ctx context.Context, batch []types.Credential) error {
	docs := make([]interface{}, len(batch))
	for i, c := range batch {
		docs[i] = CredentialDocFrom(c)
	}
	return s.bulkInsert(ctx, s.credentialsIndex, docs)
}

// BulkInsertCookieBundles implements Sink.
func (s *ElasticSink) BulkInsertCookieBundles(ctx context.Context, batch []*types.CookieBundle) error {
	docs := make([]interface{}, len(batch))
	for i, b := range batch {
		docs[i] = CookieBundleDocFrom(b)
	}
	return s.bulkInsert(ctx, s.cookieBundleIndex, docs)
}

// Close implements Sink.
func (s *ElasticSink) Close() error {
	return nil
}
