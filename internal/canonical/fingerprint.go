package canonical

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for stage fingerprints. The version suffix leaves room for
// a different encoding later without colliding with old fingerprints.
const (
	DomainParse   = "planpipe/parse/v1"
	DomainAST     = "planpipe/ast/v1"
	DomainLogical = "planpipe/logical/v1"
)

// Fingerprint returns the hex SHA-256 of domain, a 0x00 separator, and the
// canonical JSON of v.
func Fingerprint(domain string, v any) (string, error) {
	data, err := Marshal(v)
	if err != nil {
		return "", fmt.Errorf("fingerprint %s: %w", domain, err)
	}
	return hashWithDomain(domain, data), nil
}

func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
