package report

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supplysim/supplysim/sim/supplychain"
)

func TestWrite_Chart_ProducesDecodablePNG(t *testing.T) {
	// GIVEN results written as a chart
	dir := t.TempDir()
	_, err := Write(dir, sampleResults(), []string{FormatPNG})
	require.NoError(t, err)

	// WHEN the image is decoded
	data, err := os.ReadFile(filepath.Join(dir, ChartFile))
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))

	// THEN it is a landscape PNG
	require.NoError(t, err)
	b := img.Bounds()
	assert.Greater(t, b.Dx(), b.Dy())
}

func TestWrite_Chart_NoRecords_StillRenders(t *testing.T) {
	dir := t.TempDir()
	_, err := Write(dir, &supplychain.Results{}, []string{FormatPNG})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ChartFile))
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
}
