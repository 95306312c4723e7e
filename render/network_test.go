package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"protein-explorer/models"
)

func decode(t *testing.T, data []byte) (width, height int) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy()
}

func TestNetworkPNGProducesDecodableImage(t *testing.T) {
	edges := []models.InteractionEdge{
		{From: "HBA1", To: "HBB", Score: 0.999},
		{From: "HBB", To: "HBD", Score: 0.92},
		{From: "HBA1", To: "HBD", Score: 0.41},
	}

	data, err := NetworkPNG(edges)
	require.NoError(t, err)

	w, h := decode(t, data)
	assert.Equal(t, imageWidth, w)
	assert.Equal(t, imageHeight, h)
}

func TestNetworkPNGEmptyGraph(t *testing.T) {
	data, err := NetworkPNG(nil)
	require.NoError(t, err)

	w, h := decode(t, data)
	assert.Equal(t, imageWidth, w)
	assert.Equal(t, imageHeight, h)
}

func TestNetworkPNGSelfInteractionOnly(t *testing.T) {
	// A self edge contributes a node but no drawable line.
	data, err := NetworkPNG([]models.InteractionEdge{{From: "HBB", To: "HBB", Score: 0.5}})
	require.NoError(t, err)

	_, _ = decode(t, data)
}

func TestNetworkPNGDeterministic(t *testing.T) {
	edges := []models.InteractionEdge{
		{From: "HBA1", To: "HBB", Score: 0.999},
		{From: "HBB", To: "HBD", Score: 0.92},
	}

	first, err := NetworkPNG(edges)
	require.NoError(t, err)
	second, err := NetworkPNG(edges)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
