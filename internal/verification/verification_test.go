package verification

import (
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type mockROM map[uint16]byte

func (m mockROM) ReadROM(address uint16) byte {
	return m[address]
}

func TestCheckBytes(t *testing.T) {
	rom := mockROM{0xE000: 0x85, 0xE001: 0x56, 0xE002: 0x20}

	tests := []struct {
		name     string
		expected []byte
		wantErr  bool
	}{
		{name: "exact match", expected: []byte{0x85, 0x56, 0x20}},
		{name: "prefix match", expected: []byte{0x85}},
		{name: "single byte differs", expected: []byte{0x85, 0x57, 0x20}, wantErr: true},
		{name: "all bytes differ", expected: []byte{0x00, 0x00, 0x00}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := log.NewTestLogger(t)
			if tt.wantErr {
				logger = log.NewNop()
			}
			err := CheckBytes(logger, rom, 0xE000, tt.expected)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrMismatch))
			assert.True(t, strings.Contains(err.Error(), ". E000: 85 56 20"))
		})
	}
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, ". A000: 94 E3 7B", FormatBytes(0xA000, []byte{0x94, 0xE3, 0x7B}))
	assert.Equal(t, ". 0000:", FormatBytes(0, nil))
}
