package services

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"protein-explorer/models"
)

const pdbPayload = "HEADER    OXYGEN TRANSPORT\nATOM      1  N   VAL A   1      11.104   6.134  -6.504\nEND\n"

func pdbServer(t *testing.T, entries map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if body, ok := entries[r.URL.Path]; ok {
			w.Write([]byte(body))
			return
		}
		http.Error(w, "not found", http.StatusNotFound)
	}))
}

func TestResolveStructurePrefersExperimental(t *testing.T) {
	pdb := pdbServer(t, map[string]string{"/download/1Z8U.pdb": pdbPayload})
	defer pdb.Close()
	alphafold := pdbServer(t, map[string]string{"/files/AF-P69905-F1-model_v4.pdb": pdbPayload})
	defer alphafold.Close()

	svc := NewStructureService(pdb.URL, alphafold.URL, pdb.Client())
	ref, err := svc.ResolveStructure(models.ProteinRecord{
		ID:          "P69905",
		PDBIDs:      []string{"1Z8U"},
		AlphaFoldID: "P69905",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StructureSourceExperimental, ref.Source)
	assert.Equal(t, "1Z8U", ref.ID)
	assert.Equal(t, "pdb", ref.Format)
	assert.Equal(t, pdbPayload, ref.Data)
}

func TestResolveStructureFallsBackToPrediction(t *testing.T) {
	pdb := pdbServer(t, nil)
	defer pdb.Close()
	alphafold := pdbServer(t, map[string]string{"/files/AF-P69905-F1-model_v4.pdb": pdbPayload})
	defer alphafold.Close()

	svc := NewStructureService(pdb.URL, alphafold.URL, pdb.Client())
	ref, err := svc.ResolveStructure(models.ProteinRecord{
		ID:          "P69905",
		PDBIDs:      []string{"1Z8U"},
		AlphaFoldID: "P69905",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StructureSourcePredicted, ref.Source)
	assert.Equal(t, "P69905", ref.ID)
}

func TestResolveStructureSkipsMissingPDBEntries(t *testing.T) {
	pdb := pdbServer(t, map[string]string{"/download/2DN1.pdb": pdbPayload})
	defer pdb.Close()
	alphafold := pdbServer(t, nil)
	defer alphafold.Close()

	svc := NewStructureService(pdb.URL, alphafold.URL, pdb.Client())
	ref, err := svc.ResolveStructure(models.ProteinRecord{
		ID:     "P69905",
		PDBIDs: []string{"1Z8U", "2DN1"},
	})
	require.NoError(t, err)

	assert.Equal(t, models.StructureSourceExperimental, ref.Source)
	assert.Equal(t, "2DN1", ref.ID)
}

func TestResolveStructureNoneAvailable(t *testing.T) {
	pdb := pdbServer(t, nil)
	defer pdb.Close()
	alphafold := pdbServer(t, nil)
	defer alphafold.Close()

	svc := NewStructureService(pdb.URL, alphafold.URL, pdb.Client())
	_, err := svc.ResolveStructure(models.ProteinRecord{
		ID:          "P69905",
		PDBIDs:      []string{"1Z8U"},
		AlphaFoldID: "P69905",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoStructure))
}

func TestResolveStructureNoReferences(t *testing.T) {
	pdb := pdbServer(t, nil)
	defer pdb.Close()
	alphafold := pdbServer(t, nil)
	defer alphafold.Close()

	svc := NewStructureService(pdb.URL, alphafold.URL, pdb.Client())
	_, err := svc.ResolveStructure(models.ProteinRecord{ID: "Q00000"})
	assert.True(t, errors.Is(err, ErrNoStructure))
}
