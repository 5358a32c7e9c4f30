package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Stage prefixes keep dataset, layout, and artifact entries in
// distinct key namespaces even when their hashed inputs coincide.
const (
	prefixDataset  = "dataset"
	prefixLayout   = "layout"
	prefixArtifact = "artifact"
)

// hashKey builds a stage-scoped key of the form <stage>:<sha256(parts)>.
// Parts are JSON-encoded so option structs and column lists key
// deterministically.
func hashKey(stage string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return stage + ":" + hex.EncodeToString(sum[:])
}

// Hash returns the hex SHA-256 digest of data. The pipeline uses it to
// content-address raw CSV input and serialized layout trees.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
