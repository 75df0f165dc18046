package core

import "testing"

func TestOffsetStartString(t *testing.T) {
	tests := []struct {
		start OffsetStart
		want  string
	}{
		{OffsetLatest, "latest"},
		{OffsetEarliest, "earliest"},
		{OffsetTimestamp, "timestamp"},
		{OffsetStart(99), "latest"},
	}

	for _, tt := range tests {
		if got := tt.start.String(); got != tt.want {
			t.Errorf("OffsetStart(%d).String() = %q, want %q", int(tt.start), got, tt.want)
		}
	}
}
