package models

const (
	StructureSourceExperimental = "experimental"
	StructureSourcePredicted    = "predicted"
)

// StructureReference carries a resolved coordinate file together with its
// origin, so the viewer can tell an experimental model from a prediction.
type StructureReference struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Format string `json:"format"`
	Data   string `json:"data"`
}
