package conquest

import (
	"encoding/hex"

	"lukechampine.com/blake3"
)

// Digest returns the BLAKE3 hash of the world's canonical CFEN encoding.
// Two worlds with the same digest hold the same position, which is how
// replay equivalence is asserted cheaply.
func Digest(w *World) [32]byte {
	return blake3.Sum256([]byte(EncodeCFEN(w)))
}

// DigestString returns Digest as lowercase hex.
func DigestString(w *World) string {
	d := Digest(w)
	return hex.EncodeToString(d[:])
}
