package feed

import (
	"bytes"
	"strconv"
	"time"
)

// UnixTime decodes the feed's timestamp fields, which are inconsistently
// encoded as unix seconds or unix milliseconds depending on the entry's age.
// The unit is detected by magnitude: values beyond the representable range
// of seconds are treated as milliseconds. null decodes to the zero value.
type UnixTime struct {
	time.Time
}

// maxUnixSeconds is 9999-12-31T23:59:59Z; anything larger must be millis.
const maxUnixSeconds = 253402300799

func (t *UnixTime) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	value, err := strconv.ParseInt(string(trimmed), 10, 64)
	if err != nil {
		return err
	}
	if value == 0 {
		t.Time = time.Time{}
		return nil
	}

	if value > maxUnixSeconds || value < -maxUnixSeconds {
		t.Time = time.UnixMilli(value).UTC()
	} else {
		t.Time = time.Unix(value, 0).UTC()
	}
	return nil
}

func (t UnixTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(t.UnixMilli(), 10)), nil
}
