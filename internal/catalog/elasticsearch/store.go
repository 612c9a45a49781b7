// Package elasticsearch is the search-engine catalog backend.
package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"shop-assistant/internal/catalog"
	"shop-assistant/internal/common/errors"
	"shop-assistant/internal/models"

	es "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// Store implements catalog.Store over one index.
type Store struct {
	client *es.Client
	index  string
}

var _ catalog.Store = (*Store)(nil)

func New(client *es.Client, index string) *Store {
	if index == "" {
		index = "products"
	}
	return &Store{client: client, index: index}
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source models.Product `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
	Aggregations struct {
		Values struct {
			Buckets []struct {
				Key string `json:"key"`
			} `json:"buckets"`
		} `json:"values"`
	} `json:"aggregations"`
}

func (s *Store) Query(ctx context.Context, f models.CatalogFilter) ([]models.Product, error) {
	resp, err := s.search(ctx, models.QueryTypeFilter, buildSearchBody(f))
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(resp.Hits.Hits))
	for _, h := range resp.Hits.Hits {
		products = append(products, h.Source)
	}
	return products, nil
}

func (s *Store) Categories(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, models.QueryTypeCategories, "category")
}

func (s *Store) Brands(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, models.QueryTypeBrands, "brand")
}

func (s *Store) distinct(ctx context.Context, qt models.QueryType, field string) ([]string, error) {
	resp, err := s.search(ctx, qt, termsAggregation(field))
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(resp.Aggregations.Values.Buckets))
	for _, b := range resp.Aggregations.Values.Buckets {
		if b.Key != "" {
			out = append(out, b.Key)
		}
	}
	return out, nil
}

func (s *Store) Product(ctx context.Context, id int64) (*models.Product, error) {
	req := esapi.GetRequest{
		Index:      s.index,
		DocumentID: strconv.FormatInt(id, 10),
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, s.transportError(ctx, models.QueryTypeProductByID, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		body, _ := io.ReadAll(res.Body)
		if bytes.Contains(body, []byte("index_not_found_exception")) {
			return nil, errors.NewIndexNotFoundError(s.index)
		}
		return nil, fmt.Errorf("%w: id %d", catalog.ErrProductNotFound, id)
	}
	if res.IsError() {
		return nil, errors.NewCatalogQueryFailedError(string(models.QueryTypeProductByID), fmt.Errorf("get failed: %s", res.String()))
	}

	var doc struct {
		Source models.Product `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, errors.NewCatalogQueryFailedError(string(models.QueryTypeProductByID), err)
	}
	return &doc.Source, nil
}

func (s *Store) search(ctx context.Context, qt models.QueryType, body map[string]interface{}) (*searchResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(payload),
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, s.transportError(ctx, qt, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		switch {
		case res.StatusCode == http.StatusNotFound:
			return nil, errors.NewIndexNotFoundError(s.index)
		case res.StatusCode >= http.StatusInternalServerError:
			return nil, errors.NewCatalogUnavailableError("elasticsearch", fmt.Errorf("search failed: %s", res.String()))
		}
		return nil, errors.NewCatalogQueryFailedError(string(qt), fmt.Errorf("search failed: %s", res.String()))
	}

	var resp searchResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return nil, errors.NewCatalogQueryFailedError(string(qt), fmt.Errorf("decode response: %w", err))
	}
	return &resp, nil
}

func (s *Store) transportError(ctx context.Context, qt models.QueryType, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return errors.NewCatalogTimeoutError(string(qt), err)
	}
	return errors.NewElasticsearchConnectionFailedError(err)
}

// EnsureIndex creates the index with the product mapping when it is missing.
func (s *Store) EnsureIndex(ctx context.Context) error {
	exists, err := esapi.IndicesExistsRequest{Index: []string{s.index}}.Do(ctx, s.client)
	if err != nil {
		return errors.NewElasticsearchConnectionFailedError(err)
	}
	exists.Body.Close()
	if exists.StatusCode == http.StatusOK {
		return nil
	}

	res, err := esapi.IndicesCreateRequest{
		Index: s.index,
		Body:  strings.NewReader(indexMapping),
	}.Do(ctx, s.client)
	if err != nil {
		return errors.NewElasticsearchConnectionFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("create index %s: %s", s.index, res.String())
	}
	return nil
}

// Index bulk-writes products keyed by id and waits for them to be searchable.
func (s *Store) Index(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, p := range products {
		meta := map[string]interface{}{
			"index": map[string]interface{}{"_index": s.index, "_id": strconv.FormatInt(p.ID, 10)},
		}
		if err := enc.Encode(meta); err != nil {
			return err
		}
		if err := enc.Encode(p); err != nil {
			return err
		}
	}

	res, err := esapi.BulkRequest{
		Body:    &buf,
		Refresh: "wait_for",
	}.Do(ctx, s.client)
	if err != nil {
		return errors.NewElasticsearchConnectionFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("bulk index: %s", res.String())
	}

	var result struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode bulk response: %w", err)
	}
	if result.Errors {
		return fmt.Errorf("bulk index reported item errors")
	}
	return nil
}
