package image

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/retrogfx/rgba"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	m := grid(5, 3)
	m.SetPixel(rgba.Transparent, 2, 1)

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m))

	got, err := Decode(b)
	require.NoError(t, err)

	assert.Equal(t, m.Width(), got.Width())
	assert.Equal(t, m.Height(), got.Height())
	assert.Equal(t, m.RGBAData(), got.RGBAData())
}

func TestEncodeQuantized(t *testing.T) {
	t.Parallel()

	// indexed data does not survive encoding, the PNG is plain RGBA
	m := quantized(t)

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m))

	got, err := Decode(b)
	require.NoError(t, err)

	assert.Equal(t, m.RGBAData(), got.RGBAData())
	_, err = got.IndexedData()
	assert.ErrorIs(t, err, ErrNoIndexedData)
}

func TestSave(t *testing.T) {
	t.Parallel()

	m := grid(4, 4)
	path := filepath.Join(t.TempDir(), "out.png")

	require.NoError(t, m.Save(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := Decode(f)
	require.NoError(t, err)
	assert.Equal(t, m.RGBAData(), got.RGBAData())
}

func TestSaveBadPath(t *testing.T) {
	t.Parallel()

	err := grid(2, 2).Save(filepath.Join(t.TempDir(), "missing", "out.png"))
	assert.Error(t, err)
}
