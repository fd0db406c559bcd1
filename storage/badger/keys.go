package badger

import (
	"encoding/binary"
	"time"
)

// Key prefixes for different data types
const (
	itemPrefix        = "item:"
	itemCreatedPrefix = "itemc:"
)

// makeItemKey generates a key for an item by ID.
func makeItemKey(id string) []byte {
	buf := make([]byte, 0, len(itemPrefix)+len(id))
	buf = append(buf, itemPrefix...)
	return append(buf, id...)
}

// makeItemCreatedKey generates a composite key for the created-at index.
// Format: prefix:timestamp:id
func makeItemCreatedKey(createdAt time.Time, id string) []byte {
	buf := make([]byte, 0, len(itemCreatedPrefix)+8+len(id))
	buf = append(buf, itemCreatedPrefix...)
	buf = binary.BigEndian.AppendUint64(buf, orderedMicros(createdAt))
	return append(buf, id...)
}

// makePartialItemCreatedKey generates a partial key for created-at range queries.
// Format: prefix:timestamp
func makePartialItemCreatedKey(createdAt time.Time) []byte {
	buf := make([]byte, 0, len(itemCreatedPrefix)+8)
	buf = append(buf, itemCreatedPrefix...)
	return binary.BigEndian.AppendUint64(buf, orderedMicros(createdAt))
}

// orderedMicros maps Unix microseconds onto uint64 so that BigEndian byte
// order matches chronological order, including times before 1970.
func orderedMicros(t time.Time) uint64 {
	return uint64(t.UnixMicro()) ^ (1 << 63)
}
