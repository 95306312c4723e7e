package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/microcosm-cc/bluemonday"

	"protein-explorer/logging"
	"protein-explorer/models"
	"protein-explorer/render"
	"protein-explorer/services"
)

const defaultInteractionLimit = 25

type ProteinHandler struct {
	UniProt      *services.UniProtService
	Interactions *services.StringService
	Structure    *services.StructureService

	validate  *validator.Validate
	sanitizer *bluemonday.Policy
}

func NewProteinHandler(uniprot *services.UniProtService, interactions *services.StringService, structure *services.StructureService) *ProteinHandler {
	return &ProteinHandler{
		UniProt:      uniprot,
		Interactions: interactions,
		Structure:    structure,
		validate:     validator.New(),
		sanitizer:    bluemonday.StrictPolicy(),
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// accession pulls the identifier out of the route and rejects anything that
// is not a plausible accession before an upstream call is made.
func (h *ProteinHandler) accession(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := mux.Vars(r)["id"]
	if err := h.validate.Var(id, "required,alphanum,min=3,max=10"); err != nil {
		logging.Logger.Warnf("Event ID: INVALID_ACCESSION, Description: Rejected identifier %q", id)
		writeError(w, http.StatusBadRequest, "Invalid protein identifier")
		return "", false
	}
	return strings.ToUpper(id), true
}

// sanitize strips any markup from upstream free text before it reaches the
// page. The upstream databases are trusted, the text inside them is not.
func (h *ProteinHandler) sanitize(record *models.ProteinRecord) {
	record.Name = h.sanitizer.Sanitize(record.Name)
	record.Function = h.sanitizer.Sanitize(record.Function)
	for i, p := range record.Pathways {
		record.Pathways[i] = h.sanitizer.Sanitize(p)
	}
	for i, l := range record.SubcellularLocations {
		record.SubcellularLocations[i] = h.sanitizer.Sanitize(l)
	}
	for i, d := range record.Diseases {
		record.Diseases[i] = h.sanitizer.Sanitize(d)
	}
}

// GetProtein returns the metadata record for one accession.
func (h *ProteinHandler) GetProtein(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accession(w, r)
	if !ok {
		return
	}

	record, err := h.UniProt.FetchProtein(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(w, http.StatusNotFound, "No UniProtKB entry found for "+id)
			return
		}
		writeError(w, http.StatusBadGateway, "Unable to fetch protein data: "+err.Error())
		return
	}
	h.sanitize(&record)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record)
}

// GetInteractions returns the interaction network as a node/edge list.
func (h *ProteinHandler) GetInteractions(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accession(w, r)
	if !ok {
		return
	}

	limit := defaultInteractionLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	edges, err := h.Interactions.FetchInteractions(id, limit)
	if err != nil {
		writeError(w, http.StatusBadGateway, "Unable to fetch interaction data: "+err.Error())
		return
	}

	resp := models.NetworkResponse{
		Nodes: make([]models.NetworkNode, 0),
		Edges: edges,
	}
	seen := make(map[string]bool)
	for _, e := range edges {
		for _, name := range []string{e.From, e.To} {
			if !seen[name] {
				seen[name] = true
				resp.Nodes = append(resp.Nodes, models.NetworkNode{ID: name})
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetNetworkImage renders the interaction network as a PNG.
func (h *ProteinHandler) GetNetworkImage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accession(w, r)
	if !ok {
		return
	}

	edges, err := h.Interactions.FetchInteractions(id, defaultInteractionLimit)
	if err != nil {
		writeError(w, http.StatusBadGateway, "Unable to fetch interaction data: "+err.Error())
		return
	}

	png, err := render.NetworkPNG(edges)
	if err != nil {
		logging.Logger.Errorf("Event ID: NETWORK_RENDER_FAILED, Description: Failed to render network for %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to render interaction network")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// GetStructure resolves and returns the best available coordinate file.
func (h *ProteinHandler) GetStructure(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accession(w, r)
	if !ok {
		return
	}

	record, err := h.UniProt.FetchProtein(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(w, http.StatusNotFound, "No UniProtKB entry found for "+id)
			return
		}
		writeError(w, http.StatusBadGateway, "Unable to fetch protein data: "+err.Error())
		return
	}

	ref, err := h.Structure.ResolveStructure(record)
	if err != nil {
		if errors.Is(err, services.ErrNoStructure) {
			writeError(w, http.StatusNotFound, "No experimental or predicted structure is available for "+id)
			return
		}
		writeError(w, http.StatusBadGateway, "Unable to fetch structure data: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ref)
}

// Healthz reports liveness.
func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
