package roadmap

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// timeNow is a package-level variable for testability.
// Tests can replace this to control time in assertions.
var timeNow = time.Now

// TimestampLayout is the UTC millisecond ISO 8601 layout used for every
// createdAt/updatedAt/completedAt value.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

func timestamp() string {
	return timeNow().UTC().Format(TimestampLayout)
}

const idCharset = "0123456789abcdefghijklmnopqrstuvwxyz"

// newID returns "<prefix>_<unix millis>_<7 base36 chars>".
func newID(prefix string) string {
	suffix := make([]byte, 7)
	max := big.NewInt(int64(len(idCharset)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand does not fail on supported platforms.
			panic(fmt.Sprintf("roadmap: generating id: %v", err))
		}
		suffix[i] = idCharset[n.Int64()]
	}
	return fmt.Sprintf("%s_%d_%s", prefix, timeNow().UnixMilli(), suffix)
}

// parseTimestamp parses stored timestamps, accepting any RFC 3339 value.
func parseTimestamp(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
