package services

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"protein-explorer/logging"
	"protein-explorer/metrics"
	"protein-explorer/models"
)

// ErrNoStructure is returned when neither the experimental nor the predicted
// source has coordinates for the protein.
var ErrNoStructure = errors.New("no structure available")

// StructureService resolves a downloadable coordinate file for a protein,
// preferring experimental PDB entries over AlphaFold predictions.
type StructureService struct {
	PDBBaseURL       string
	AlphaFoldBaseURL string
	Client           *http.Client
}

func NewStructureService(pdbBaseURL, alphaFoldBaseURL string, client *http.Client) *StructureService {
	return &StructureService{
		PDBBaseURL:       strings.TrimRight(pdbBaseURL, "/"),
		AlphaFoldBaseURL: strings.TrimRight(alphaFoldBaseURL, "/"),
		Client:           client,
	}
}

// ResolveStructure tries each PDB cross-reference in order and falls back to
// the AlphaFold model. Individual upstream misses are skipped; the caller
// only sees ErrNoStructure when every source came up empty.
func (s *StructureService) ResolveStructure(record models.ProteinRecord) (models.StructureReference, error) {
	for _, pdbID := range record.PDBIDs {
		endpoint := fmt.Sprintf("%s/download/%s.pdb", s.PDBBaseURL, url.PathEscape(pdbID))
		data, err := s.download(endpoint, "pdb")
		if err != nil {
			logging.Logger.Warnf("Event ID: STRUCTURE_PDB_MISS, Description: PDB entry %s unavailable: %v", pdbID, err)
			continue
		}
		logging.Logger.Infof("Event ID: STRUCTURE_RESOLVED, Description: Using experimental PDB structure %s for %s", pdbID, record.ID)
		return models.StructureReference{
			ID:     pdbID,
			Source: models.StructureSourceExperimental,
			Format: "pdb",
			Data:   string(data),
		}, nil
	}

	if record.AlphaFoldID != "" {
		endpoint := fmt.Sprintf("%s/files/AF-%s-F1-model_v4.pdb", s.AlphaFoldBaseURL, url.PathEscape(record.AlphaFoldID))
		data, err := s.download(endpoint, "alphafold")
		if err == nil {
			logging.Logger.Infof("Event ID: STRUCTURE_RESOLVED, Description: Using AlphaFold predicted structure for %s", record.ID)
			return models.StructureReference{
				ID:     record.AlphaFoldID,
				Source: models.StructureSourcePredicted,
				Format: "pdb",
				Data:   string(data),
			}, nil
		}
		logging.Logger.Warnf("Event ID: STRUCTURE_ALPHAFOLD_MISS, Description: AlphaFold model for %s unavailable: %v", record.AlphaFoldID, err)
	}

	logging.Logger.Warnf("Event ID: STRUCTURE_NOT_FOUND, Description: No experimental or predicted structure for %s", record.ID)
	return models.StructureReference{}, fmt.Errorf("accession %s: %w", record.ID, ErrNoStructure)
}

func (s *StructureService) download(endpoint, source string) ([]byte, error) {
	timer := prometheus.NewTimer(metrics.UpstreamDuration.WithLabelValues(source))
	resp, err := s.Client.Get(endpoint)
	timer.ObserveDuration()
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(source, metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		metrics.UpstreamRequests.WithLabelValues(source, metrics.OutcomeNotFound).Inc()
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamRequests.WithLabelValues(source, metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(source, metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("read body: %w", err)
	}
	metrics.UpstreamRequests.WithLabelValues(source, metrics.OutcomeOK).Inc()
	return data, nil
}
