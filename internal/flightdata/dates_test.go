package flightdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "iso", input: "2025-12-01", want: "12/01/2025"},
		{name: "dataset layout", input: "12/01/2025", want: "12/01/2025"},
		{name: "surrounding spaces", input: " 2025-12-01 ", want: "12/01/2025"},
		{name: "empty", input: "", wantErr: true},
		{name: "day first", input: "31/12/2025", wantErr: true},
		{name: "garbage", input: "tomorrow", wantErr: true},
		{name: "invalid day", input: "2025-02-30", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeDate(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
