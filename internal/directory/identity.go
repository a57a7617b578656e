package directory

import (
	"crypto/sha256"
	"encoding/hex"
)

// IdentityOf derives the stable identity of a site from the exact URL string
// as submitted. The hash is case-sensitive and performs no normalization:
// "https://a.example" and "https://a.example/" are two distinct sites.
func IdentityOf(rawURL string) SiteID {
	h := sha256.Sum256([]byte(rawURL))

	return SiteID(hex.EncodeToString(h[:]))
}
