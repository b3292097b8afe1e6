package retrogfx

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// AssetDB caches converted assets keyed by the SHA1 of the source image
// and the conversion settings that produced them.
type AssetDB struct {
	db *sql.DB
}

// OpenAssetDB opens or creates the asset cache at file.
func OpenAssetDB(file string) (*AssetDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS asset (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL, settings TEXT NOT NULL, palette BLOB NOT NULL, tiles BLOB NOT NULL, tilemap BLOB NOT NULL, UNIQUE (sha1, settings))"); err != nil {
		return nil, err
	}

	return &AssetDB{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (db *AssetDB) Close() error {
	return db.db.Close()
}

// Get returns the cached assets for the given source hash and settings,
// or nil without error on a miss.
func (db *AssetDB) Get(sha, settings string) (*NativeAssets, error) {
	a := new(NativeAssets)
	switch err := db.db.QueryRow("SELECT palette, tiles, tilemap FROM asset WHERE sha1 = ? AND settings = ?", sha, settings).Scan(&a.Palette, &a.Tiles, &a.Tilemap); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return a, nil
	default:
		return nil, err
	}
}

// Put stores the assets for the given source hash and settings, replacing
// any previous entry.
func (db *AssetDB) Put(sha, settings string, a *NativeAssets) error {
	if _, err := db.db.Exec("INSERT OR REPLACE INTO asset (sha1, settings, palette, tiles, tilemap) VALUES (?, ?, ?, ?, ?)", sha, settings, a.Palette, a.Tiles, a.Tilemap); err != nil {
		return err
	}
	return nil
}
