package report

import (
	"fmt"
	"slices"

	"stockbot/internal/stockdata"
)

// Stringize renders every entry of `record` as "key: value" in record order.
// With a non-empty `allowlist` only the keys it contains are rendered, the
// order of the allowlist itself is ignored.
func Stringize(record *stockdata.Record, allowlist []string) []string {
	out := []string{}
	for _, entry := range record.Entries() {
		if len(allowlist) > 0 && !slices.Contains(allowlist, entry.Key) {
			continue
		}
		out = append(out, fmt.Sprintf("%s: %s", entry.Key, entry.Value))
	}
	return out
}
