package models

// InteractionEdge is one reported protein-protein interaction with the
// combined confidence score assigned by the interaction database.
type InteractionEdge struct {
	From  string  `json:"from"`
	To    string  `json:"to"`
	Score float64 `json:"score"`
}

type NetworkNode struct {
	ID string `json:"id"`
}

type NetworkResponse struct {
	Nodes []NetworkNode     `json:"nodes"`
	Edges []InteractionEdge `json:"edges"`
}
