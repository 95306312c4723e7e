package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"protein-explorer/logging"
	"protein-explorer/metrics"
	"protein-explorer/models"
)

// ErrNotFound is returned when UniProtKB has no entry for the accession.
var ErrNotFound = errors.New("protein not found")

// UniProtService fetches protein metadata from the UniProtKB REST API.
type UniProtService struct {
	BaseURL string
	Client  *http.Client
}

func NewUniProtService(baseURL string, client *http.Client) *UniProtService {
	return &UniProtService{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  client,
	}
}

// uniProtEntry mirrors only the slice of the UniProtKB JSON this app reads.
// Fields missing from the response decode to zero values, so upstream schema
// drift degrades to blank display fields instead of an error.
type uniProtEntry struct {
	PrimaryAccession   string `json:"primaryAccession"`
	ProteinDescription struct {
		RecommendedName struct {
			FullName struct {
				Value string `json:"value"`
			} `json:"fullName"`
		} `json:"recommendedName"`
	} `json:"proteinDescription"`
	Genes []struct {
		GeneName struct {
			Value string `json:"value"`
		} `json:"geneName"`
	} `json:"genes"`
	Comments []struct {
		CommentType string `json:"commentType"`
		Texts       []struct {
			Value string `json:"value"`
		} `json:"texts"`
		SubcellularLocations []struct {
			Location struct {
				Value string `json:"value"`
			} `json:"location"`
		} `json:"subcellularLocations"`
		Disease struct {
			DiseaseID string `json:"diseaseId"`
		} `json:"disease"`
	} `json:"comments"`
	Sequence struct {
		Length    int     `json:"length"`
		MolWeight float64 `json:"molWeight"`
	} `json:"sequence"`
	CrossReferences []struct {
		Database   string `json:"database"`
		ID         string `json:"id"`
		Properties []struct {
			Key   string `json:"key"`
			Value string `json:"value"`
		} `json:"properties"`
	} `json:"uniProtKBCrossReferences"`
}

// FetchProtein retrieves the UniProtKB entry for the given accession and
// flattens it into a ProteinRecord.
func (s *UniProtService) FetchProtein(accession string) (models.ProteinRecord, error) {
	endpoint := fmt.Sprintf("%s/uniprotkb/%s.json", s.BaseURL, url.PathEscape(accession))
	logging.Logger.Infof("Event ID: UNIPROT_FETCH_START, Description: Fetching UniProtKB entry for %s", accession)

	timer := prometheus.NewTimer(metrics.UpstreamDuration.WithLabelValues("uniprot"))
	resp, err := s.Client.Get(endpoint)
	timer.ObserveDuration()
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("uniprot", metrics.OutcomeError).Inc()
		logging.Logger.Errorf("Event ID: UNIPROT_FETCH_FAILED, Description: Request to UniProtKB failed: %v", err)
		return models.ProteinRecord{}, fmt.Errorf("request to UniProtKB failed: %w", err)
	}
	defer resp.Body.Close()

	// UniProt answers 400 for syntactically invalid accessions and 404 for
	// unknown ones; both mean "no such protein" to the caller.
	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest {
		metrics.UpstreamRequests.WithLabelValues("uniprot", metrics.OutcomeNotFound).Inc()
		logging.Logger.Warnf("Event ID: UNIPROT_NOT_FOUND, Description: UniProtKB has no entry for %s (status %d)", accession, resp.StatusCode)
		return models.ProteinRecord{}, fmt.Errorf("accession %s: %w", accession, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamRequests.WithLabelValues("uniprot", metrics.OutcomeError).Inc()
		logging.Logger.Errorf("Event ID: UNIPROT_BAD_STATUS, Description: UniProtKB returned status %d for %s", resp.StatusCode, accession)
		return models.ProteinRecord{}, fmt.Errorf("UniProtKB returned status %d", resp.StatusCode)
	}

	var entry uniProtEntry
	if err := json.NewDecoder(resp.Body).Decode(&entry); err != nil {
		metrics.UpstreamRequests.WithLabelValues("uniprot", metrics.OutcomeError).Inc()
		logging.Logger.Errorf("Event ID: UNIPROT_DECODE_FAILED, Description: Failed to decode UniProtKB response: %v", err)
		return models.ProteinRecord{}, fmt.Errorf("failed to decode UniProtKB response: %w", err)
	}
	metrics.UpstreamRequests.WithLabelValues("uniprot", metrics.OutcomeOK).Inc()

	record := models.ProteinRecord{
		ID:              accession,
		Name:            entry.ProteinDescription.RecommendedName.FullName.Value,
		SequenceLength:  entry.Sequence.Length,
		MolecularWeight: entry.Sequence.MolWeight,
	}
	if len(entry.Genes) > 0 {
		record.Gene = entry.Genes[0].GeneName.Value
	}

	for _, c := range entry.Comments {
		switch c.CommentType {
		case "FUNCTION":
			if record.Function == "" && len(c.Texts) > 0 {
				record.Function = c.Texts[0].Value
			}
		case "SUBCELLULAR LOCATION":
			for _, l := range c.SubcellularLocations {
				if l.Location.Value != "" {
					record.SubcellularLocations = append(record.SubcellularLocations, l.Location.Value)
				}
			}
		case "DISEASE":
			if c.Disease.DiseaseID != "" {
				record.Diseases = append(record.Diseases, c.Disease.DiseaseID)
			}
		}
	}

	for _, ref := range entry.CrossReferences {
		switch ref.Database {
		case "PDB":
			record.PDBIDs = append(record.PDBIDs, ref.ID)
		case "AlphaFoldDB":
			if record.AlphaFoldID == "" {
				record.AlphaFoldID = ref.ID
			}
		case "Reactome":
			name := ref.ID
			for _, p := range ref.Properties {
				if p.Key == "PathwayName" && p.Value != "" && p.Value != "-" {
					name = p.Value
				}
			}
			record.Pathways = append(record.Pathways, name)
		}
	}

	logging.Logger.Infof("Event ID: UNIPROT_FETCH_OK, Description: Fetched %s (%s), %d aa", accession, record.Name, record.SequenceLength)
	return record, nil
}
