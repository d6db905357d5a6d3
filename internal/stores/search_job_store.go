// internal/stores/search_job_store.go
package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"jobmatch-workers/internal/common/errors"
	"jobmatch-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// ElasticsearchJobStore reads candidate jobs from a search index whose documents
// use the NormalizedJobRecord JSON shape.
type ElasticsearchJobStore struct {
	client *elasticsearch.Client
	index  string
}

func NewElasticsearchJobStore(client *elasticsearch.Client, index string) *ElasticsearchJobStore {
	if index == "" {
		index = "jobs"
	}
	return &ElasticsearchJobStore{client: client, index: index}
}

const defaultCandidateLimit = 1000

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string                     `json:"_id"`
			Source models.NormalizedJobRecord `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// GetActiveCandidateJobs filters on isActive and boosts documents mentioning the
// persona's skills or title keywords. Recall clauses never exclude a job.
func (s *ElasticsearchJobStore) GetActiveCandidateJobs(ctx context.Context, filter models.CandidateFilter) ([]models.NormalizedJobRecord, error) {
	body, err := json.Marshal(buildCandidateQuery(filter))
	if err != nil {
		return nil, errors.NewJobStoreFailedError(err)
	}

	size := filter.Limit
	if size <= 0 {
		size = defaultCandidateLimit
	}
	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, errors.NewSearchQueryFailedError(s.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.NewSearchQueryFailedError(s.index, fmt.Errorf("search failed: %s", res.String()))
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, errors.NewSearchQueryFailedError(s.index, fmt.Errorf("decode response: %w", err))
	}

	jobs := make([]models.NormalizedJobRecord, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		job := hit.Source
		if job.ID == "" {
			job.ID = hit.ID
		}
		if job.Keywords == nil {
			job.Keywords = []string{}
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func buildCandidateQuery(filter models.CandidateFilter) map[string]interface{} {
	boolQuery := map[string]interface{}{
		"filter": []interface{}{
			map[string]interface{}{"term": map[string]interface{}{"isActive": true}},
		},
	}

	var should []interface{}
	if len(filter.Skills) > 0 {
		should = append(should, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  strings.Join(filter.Skills, " "),
				"fields": []string{"keywords^2", "description"},
			},
		})
	}
	if len(filter.TitleKeywords) > 0 {
		should = append(should, map[string]interface{}{
			"match": map[string]interface{}{
				"title": strings.Join(filter.TitleKeywords, " "),
			},
		})
	}
	if len(should) > 0 {
		boolQuery["should"] = should
	}

	return map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
		"sort": []interface{}{
			"_score",
			map[string]interface{}{"postedDate": map[string]interface{}{"order": "desc", "missing": "_last"}},
		},
	}
}
