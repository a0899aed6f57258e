package chunk

import (
	"encoding/binary"
	"time"
)

// TIME is the last image modification time, stored as UTC calendar fields.
type TIME struct {
	Year   uint16
	Month  uint8
	Day    uint8
	Hour   uint8
	Minute uint8
	Second uint8
}

func decodeTIME(payload []byte, _ *IHDR) (Payload, error) {
	if len(payload) != 7 {
		return nil, wrongLength(TypeTIME, len(payload), "7")
	}
	return &TIME{
		Year:   binary.BigEndian.Uint16(payload[0:2]),
		Month:  payload[2],
		Day:    payload[3],
		Hour:   payload[4],
		Minute: payload[5],
		Second: payload[6],
	}, nil
}

// ChunkType returns TypeTIME.
func (t *TIME) ChunkType() TypeCode { return TypeTIME }

// MarshalPayload returns the 7-byte tIME payload.
func (t *TIME) MarshalPayload() ([]byte, error) {
	out := binary.BigEndian.AppendUint16(nil, t.Year)
	return append(out, t.Month, t.Day, t.Hour, t.Minute, t.Second), nil
}

// Time converts the calendar fields to a time.Time in UTC. Out-of-range
// fields are normalized the way time.Date normalizes them.
func (t *TIME) Time() time.Time {
	return time.Date(int(t.Year), time.Month(t.Month), int(t.Day),
		int(t.Hour), int(t.Minute), int(t.Second), 0, time.UTC)
}

// FromTime returns a TIME populated from tm, converted to UTC.
func FromTime(tm time.Time) *TIME {
	tm = tm.UTC()
	return &TIME{
		Year:   uint16(tm.Year()),
		Month:  uint8(tm.Month()),
		Day:    uint8(tm.Day()),
		Hour:   uint8(tm.Hour()),
		Minute: uint8(tm.Minute()),
		Second: uint8(tm.Second()),
	}
}
