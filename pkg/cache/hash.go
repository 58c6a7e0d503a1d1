package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
)

// Hash returns the hex SHA-256 of data (64 characters).
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashFrom returns the hex SHA-256 of everything write produces, without
// buffering it.
func HashFrom(write func(io.Writer) error) (string, error) {
	h := sha256.New()
	if err := write(h); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// LayoutKey returns "layout:<hash>" for the dataset with content hash
// datasetHash under opts. opts must marshal to JSON deterministically;
// option structs do. Options that cannot be marshaled, such as NaN floats,
// yield an error rather than a shared key.
func LayoutKey(datasetHash string, opts any) (string, error) {
	data, err := json.Marshal(struct {
		Dataset string `json:"dataset"`
		Options any    `json:"options"`
	}{datasetHash, opts})
	if err != nil {
		return "", err
	}
	return "layout:" + Hash(data), nil
}
