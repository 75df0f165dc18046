package core

// OffsetStart selects where a consumer group with no committed offsets
// begins reading.
type OffsetStart int

const (
	// OffsetLatest starts at the tail of the topic. It is the zero value
	// and the fallback for unrecognized reset tokens.
	OffsetLatest OffsetStart = iota

	// OffsetEarliest starts at the oldest retained message.
	OffsetEarliest

	// OffsetTimestamp starts at the first message stored at or after the
	// consume timestamp carried alongside it.
	OffsetTimestamp
)

func (o OffsetStart) String() string {
	switch o {
	case OffsetEarliest:
		return OffsetTokenEarliest
	case OffsetTimestamp:
		return OffsetTokenTimestamp
	default:
		return OffsetTokenLatest
	}
}
