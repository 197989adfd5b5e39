package repository

import (
	"strconv"
	"time"

	"github.com/fabiomatricardi/cm-log-system/entity"
)

// NextSequentialID returns max(existing ids)+1, or 1 for an empty log.
func NextSequentialID(entries []entity.LogEntry) int64 {
	var highest int64
	for _, e := range entries {
		if e.ID > highest {
			highest = e.ID
		}
	}
	return highest + 1
}

// AllocateID returns the next id above both the stored entries and the
// high-water mark, so an id freed by a delete is never handed out again.
func AllocateID(entries []entity.LogEntry, highWater int64) int64 {
	next := NextSequentialID(entries)
	if highWater >= next {
		next = highWater + 1
	}
	return next
}

// TimestampID is the fallback id used when the log cannot be read: the
// wall clock as YYYYMMDDHHMMSS.
func TimestampID(t time.Time) int64 {
	id, _ := strconv.ParseInt(t.Format("20060102150405"), 10, 64)
	return id
}

// FallbackID is TimestampID bumped past the high-water mark, which keeps two
// fallbacks in the same second apart.
func FallbackID(t time.Time, highWater int64) int64 {
	id := TimestampID(t)
	if id <= highWater {
		id = highWater + 1
	}
	return id
}
