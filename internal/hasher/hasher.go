// Package hasher fingerprints encoded frames.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/cespare/xxhash/v2"
)

// FrameKey is the xxHash64 of an encoded bitmap. Equal frames share a key;
// callers that need certainty compare the bytes on a hit.
func FrameKey(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// ContentHashReader returns the hex xxHash64 of everything read from r,
// truncated to hexLen characters (0 keeps all 16).
func ContentHashReader(r io.Reader, hexLen int) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return truncate(h.Sum64(), hexLen), nil
}

func truncate(sum uint64, hexLen int) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], sum)
	full := hex.EncodeToString(b[:])
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
