package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/efoodhub/backend/internal/models"
)

const FoodIndex = "foods"

// Search runs a fuzzy multi-match over food names and descriptions.
// Relevance ranking is ES's concern, not ours.
func Search(ctx context.Context, es *elasticsearch.Client, index, query string, from, size int) (int64, []models.Food, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search: encode query: %w", err)
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Food `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	foods := make([]models.Food, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		foods[i] = hit.Source
	}
	return r.Hits.Total.Value, foods, nil
}

// IndexFood upserts one food document, keyed by its row id.
func IndexFood(ctx context.Context, es *elasticsearch.Client, index string, food *models.Food) error {
	data, err := json.Marshal(food)
	if err != nil {
		return fmt.Errorf("index food: marshal: %w", err)
	}

	res, err := es.Index(
		index,
		bytes.NewReader(data),
		es.Index.WithContext(ctx),
		es.Index.WithDocumentID(strconv.FormatUint(uint64(food.ID), 10)),
	)
	if err != nil {
		return fmt.Errorf("index food: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index food: %s", res.Status())
	}
	return nil
}
