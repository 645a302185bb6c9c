// ════════════════════════════════════════════════════════════════════════════════════════════════
// Engine configuration — JSON bootstrap file
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Natural-Logic Search Engine
// Component: Configuration
//
// Description:
//   Loads the small JSON document that tells a synsearch binary where its
//   knowledge base lives and how the search loop should be tuned, using
//   sonnet for decoding (syncharvester.go decodes its JSON-RPC payloads
//   the same way).
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package engineconfig

import (
	"fmt"
	"os"

	"github.com/sugawarayuuta/sonnet"

	"github.com/naturalli/synsearch"
)

// Config is the on-disk bootstrap document for a synsearch binary.
type Config struct {
	// GraphPath is a mutationgraph JSON edge-list dump.
	GraphPath string `json:"graphPath"`
	// FactDBPath is a SQLite file for factdb.OpenSQLite. Empty means the
	// caller should use an in-memory factdb.Trie instead.
	FactDBPath string `json:"factDbPath"`

	MaxTicks            uint32  `json:"maxTicks"`
	CostThreshold       float32 `json:"costThreshold"`
	StopWhenResultFound bool    `json:"stopWhenResultFound"`
	Silent              bool    `json:"silent"`
	UseBFS              bool    `json:"useBfs"`
	FringeCapacity      int     `json:"fringeCapacity"`
	PoolBucketShift     uint    `json:"poolBucketShift"`
	PoolMaxBuckets      int     `json:"poolMaxBuckets"`
	SeenSetKind         string  `json:"seenSetKind"`
	BloomBits           uint64  `json:"bloomBits"`
	BloomHashes         int     `json:"bloomHashes"`
}

// Load reads and decodes a Config from path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("engineconfig: read %s: %w", path, err)
	}
	var c Config
	if err := sonnet.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("engineconfig: decode %s: %w", path, err)
	}
	return c, nil
}

// hasTuning reports whether the config set any numeric or string tuning
// field, so Options falls back to synsearch.DefaultOptions when the file
// only carries KB paths. The boolean fields (StopWhenResultFound, Silent,
// UseBFS) are not consulted: a file that sets only booleans also gets
// DefaultOptions, and those booleans are dropped.
func (c Config) hasTuning() bool {
	return c.MaxTicks != 0 || c.CostThreshold != 0 || c.FringeCapacity != 0 ||
		c.PoolBucketShift != 0 || c.PoolMaxBuckets != 0 || c.SeenSetKind != "" ||
		c.BloomBits != 0 || c.BloomHashes != 0
}

// Options converts the config's tuning fields into a synsearch.Options,
// falling back to synsearch.DefaultOptions() when hasTuning reports false.
func (c Config) Options() synsearch.Options {
	if !c.hasTuning() {
		return synsearch.DefaultOptions()
	}
	return synsearch.Options{
		MaxTicks:            c.MaxTicks,
		CostThreshold:       c.CostThreshold,
		StopWhenResultFound: c.StopWhenResultFound,
		Silent:              c.Silent,
		UseBFS:              c.UseBFS,
		FringeCapacity:      c.FringeCapacity,
		PoolBucketShift:     c.PoolBucketShift,
		PoolMaxBuckets:      c.PoolMaxBuckets,
		SeenSetKind:         c.SeenSetKind,
		BloomBits:           c.BloomBits,
		BloomHashes:         c.BloomHashes,
	}
}
