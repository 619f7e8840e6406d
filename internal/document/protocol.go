package document

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
)

// newProtocol generates a protocol number: DOC-YYYYMMDD-XXXXXX, where the
// suffix is random. The column is VARCHAR(20) and carries a unique
// constraint; the insert fails with a constraint violation on the
// (astronomically unlikely) collision rather than silently reusing one.
func newProtocol(now time.Time) string {
	u := uuid.New()
	suffix := strings.ToUpper(hex.EncodeToString(u[:3]))
	return "DOC-" + now.Format("20060102") + "-" + suffix
}
