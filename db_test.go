package retrogfx

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetDB(t *testing.T) {
	t.Parallel()

	db, err := OpenAssetDB(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer db.Close()

	a, err := db.Get("DEADBEEF", "snes")
	require.NoError(t, err)
	assert.Nil(t, a)

	want := &NativeAssets{
		Palette: []byte{0x01, 0x02},
		Tiles:   []byte{0x03, 0x04},
		Tilemap: []byte{0x05, 0x06},
	}
	require.NoError(t, db.Put("DEADBEEF", "snes", want))

	a, err = db.Get("DEADBEEF", "snes")
	require.NoError(t, err)
	assert.Equal(t, want, a)

	// Same source, different settings is a separate entry
	a, err = db.Get("DEADBEEF", "md")
	require.NoError(t, err)
	assert.Nil(t, a)

	// Replacing an entry keeps the latest assets
	want.Tiles = []byte{0x07}
	require.NoError(t, db.Put("DEADBEEF", "snes", want))

	a, err = db.Get("DEADBEEF", "snes")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x07}, a.Tiles)
}
