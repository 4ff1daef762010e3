package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/tidwall/gjson"
)

const customersIndex = "customers"

// Document is the denormalized search projection of a customer. It is
// a best-effort copy keyed by the customer id and carries no identity
// or timestamps of its own.
type Document struct {
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Email         string  `json:"email"`
	ContactNumber *string `json:"contact_number"`
}

// CustomerIndex is the secondary store serving approximate text search
type CustomerIndex interface {
	Index(ctx context.Context, id int64, doc Document) error
	Update(ctx context.Context, id int64, doc Document) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]Document, error)
}

type elasticCustomerIndex struct {
	es *elasticsearch.Client
}

func NewElasticCustomerIndex(es *elasticsearch.Client) CustomerIndex {
	return &elasticCustomerIndex{es: es}
}

func (x *elasticCustomerIndex) Index(ctx context.Context, id int64, doc Document) error {
	body, err := json.Marshal(&doc)
	if err != nil {
		return err
	}

	res, err := x.es.Index(
		customersIndex,
		bytes.NewReader(body),
		x.es.Index.WithDocumentID(docID(id)),
		x.es.Index.WithContext(ctx),
	)
	return checkResponse(res, err)
}

func (x *elasticCustomerIndex) Update(ctx context.Context, id int64, doc Document) error {
	body, err := json.Marshal(&struct {
		Doc Document `json:"doc"`
	}{Doc: doc})
	if err != nil {
		return err
	}

	res, err := x.es.Update(
		customersIndex,
		docID(id),
		bytes.NewReader(body),
		x.es.Update.WithContext(ctx),
	)
	return checkResponse(res, err)
}

func (x *elasticCustomerIndex) Delete(ctx context.Context, id int64) error {
	res, err := x.es.Delete(
		customersIndex,
		docID(id),
		x.es.Delete.WithContext(ctx),
	)
	if err == nil && res.StatusCode == http.StatusNotFound {
		// document never made it to the index, deletion is idempotent
		defer res.Body.Close()
		return nil
	}
	return checkResponse(res, err)
}

func (x *elasticCustomerIndex) Search(ctx context.Context, query string) ([]Document, error) {
	body, err := json.Marshal(searchBody(query))
	if err != nil {
		return nil, err
	}

	res, err := x.es.Search(
		x.es.Search.WithContext(ctx),
		x.es.Search.WithIndex(customersIndex),
		x.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search index responded with %s", res.Status())
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	hits := gjson.GetBytes(raw, "hits.hits.#._source")
	docs := make([]Document, 0, len(hits.Array()))
	for _, hit := range hits.Array() {
		var doc Document
		if err := json.Unmarshal([]byte(hit.Raw), &doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// searchBody builds the disjunctive match for a free-text query: a
// fuzzy multi-field match with the first character anchored, OR'd with
// a case-insensitive infix wildcard on the first name.
func searchBody(query string) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"should": []any{
					map[string]any{
						"multi_match": map[string]any{
							"query":         query,
							"fields":        []string{"first_name", "last_name", "email"},
							"fuzziness":     "AUTO",
							"prefix_length": 1,
						},
					},
					map[string]any{
						"wildcard": map[string]any{
							"first_name": map[string]any{
								"value":            fmt.Sprintf("*%s*", query),
								"case_insensitive": true,
							},
						},
					},
				},
				"minimum_should_match": 1,
			},
		},
	}
}

func checkResponse(res *esapi.Response, err error) error {
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("search index responded with %s", res.Status())
	}
	return nil
}

func docID(id int64) string {
	return strconv.FormatInt(id, 10)
}
