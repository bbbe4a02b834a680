package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// PageKey returns a deterministic key for one page of a dataset.
// Dataset names are normalized so "GeoNames " and "geonames" share entries.
func PageKey(dataset string, offset, limit int) string {
	norm := strings.ToLower(strings.TrimSpace(dataset))
	sum := sha256.Sum256([]byte(fmt.Sprintf("page|%s|offset=%d|limit=%d", norm, offset, limit)))
	return "page_" + hex.EncodeToString(sum[:16])
}
