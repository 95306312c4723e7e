package models

// ProteinRecord is the flattened view of one UniProtKB entry. It is built
// from a single API response and discarded once the request is served.
type ProteinRecord struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Gene                 string   `json:"gene,omitempty"`
	Function             string   `json:"function,omitempty"`
	SequenceLength       int      `json:"sequenceLength"`
	MolecularWeight      float64  `json:"molecularWeight"`
	Pathways             []string `json:"pathways,omitempty"`
	SubcellularLocations []string `json:"subcellularLocations,omitempty"`
	Diseases             []string `json:"diseases,omitempty"`
	PDBIDs               []string `json:"pdbIds,omitempty"`
	AlphaFoldID          string   `json:"alphaFoldId,omitempty"`
}
