package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"protein-explorer/logging"
	"protein-explorer/metrics"
	"protein-explorer/models"
)

// StringService fetches protein-protein interactions from the STRING API.
type StringService struct {
	BaseURL string
	Species int
	Client  *http.Client
}

func NewStringService(baseURL string, species int, client *http.Client) *StringService {
	return &StringService{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Species: species,
		Client:  client,
	}
}

// FetchInteractions queries the STRING network endpoint for the accession.
// An empty result is a valid answer (no known interactions), never an error.
// A limit of zero or less leaves the result count to the upstream default.
func (s *StringService) FetchInteractions(accession string, limit int) ([]models.InteractionEdge, error) {
	params := url.Values{}
	params.Set("identifiers", accession)
	params.Set("species", strconv.Itoa(s.Species))
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	endpoint := fmt.Sprintf("%s/api/json/network?%s", s.BaseURL, params.Encode())
	logging.Logger.Infof("Event ID: STRING_FETCH_START, Description: Fetching interaction network for %s", accession)

	timer := prometheus.NewTimer(metrics.UpstreamDuration.WithLabelValues("string"))
	resp, err := s.Client.Get(endpoint)
	timer.ObserveDuration()
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("string", metrics.OutcomeError).Inc()
		logging.Logger.Errorf("Event ID: STRING_FETCH_FAILED, Description: Request to STRING failed: %v", err)
		return nil, fmt.Errorf("request to STRING failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamRequests.WithLabelValues("string", metrics.OutcomeError).Inc()
		logging.Logger.Errorf("Event ID: STRING_BAD_STATUS, Description: STRING returned status %d for %s", resp.StatusCode, accession)
		return nil, fmt.Errorf("STRING returned status %d", resp.StatusCode)
	}

	var entries []struct {
		PreferredNameA string  `json:"preferredName_A"`
		PreferredNameB string  `json:"preferredName_B"`
		Score          float64 `json:"score"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		metrics.UpstreamRequests.WithLabelValues("string", metrics.OutcomeError).Inc()
		logging.Logger.Errorf("Event ID: STRING_DECODE_FAILED, Description: Failed to decode STRING response: %v", err)
		return nil, fmt.Errorf("failed to decode STRING response: %w", err)
	}
	metrics.UpstreamRequests.WithLabelValues("string", metrics.OutcomeOK).Inc()

	edges := make([]models.InteractionEdge, 0, len(entries))
	for _, e := range entries {
		if e.PreferredNameA == "" || e.PreferredNameB == "" {
			continue
		}
		edges = append(edges, models.InteractionEdge{
			From:  e.PreferredNameA,
			To:    e.PreferredNameB,
			Score: e.Score,
		})
	}

	logging.Logger.Infof("Event ID: STRING_FETCH_OK, Description: STRING returned %d interactions for %s", len(edges), accession)
	return edges, nil
}
