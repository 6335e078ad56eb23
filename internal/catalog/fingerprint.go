package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// DomainCatalog is the domain prefix mixed into catalog fingerprints.
// The version suffix allows the hashing scheme to change later.
const DomainCatalog = "dosio/catalog/v1"

var fingerprint = fingerprintOf(names[1:])

// Fingerprint identifies the catalog this binary was built with.
// Two processes agree on Kind indices iff their fingerprints match.
func Fingerprint() string {
	return fingerprint
}

// FingerprintOf computes the fingerprint of an arbitrary sorted name list.
// Used by the generator to stamp the table it emits.
func FingerprintOf(sorted []string) string {
	return fingerprintOf(sorted)
}

// fingerprintOf hashes SHA256(domain + 0x00 + names joined by 0x0a).
// The null byte keeps the domain and the data apart.
func fingerprintOf(sorted []string) string {
	h := sha256.New()
	h.Write([]byte(DomainCatalog))
	h.Write([]byte{0x00})
	h.Write([]byte(strings.Join(sorted, "\n")))
	return hex.EncodeToString(h.Sum(nil))
}
