package um

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadImagePacksBigEndian(t *testing.T) {
	raw := []byte{0xD0, 0x00, 0x00, 0x41, 0x70, 0x00, 0x00, 0x00}
	prog, err := loadImage(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, prog, 2)
	assert.Equal(t, platter(0xD0000041), prog[0])
	assert.Equal(t, platter(0x70000000), prog[1])
}

func TestLoadImageRejectsPartialTrailingGroup(t *testing.T) {
	raw := []byte{0xD0, 0x00, 0x00} // 3 bytes, not a multiple of 4
	_, err := loadImage(bytes.NewReader(raw))
	require.Error(t, err)
	fault, ok := err.(*Fault)
	require.True(t, ok)
	assert.Equal(t, FaultImage, fault.Kind)
}

func TestLoadImageEmpty(t *testing.T) {
	prog, err := loadImage(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Empty(t, prog)
}

func TestLoadBootsEngine(t *testing.T) {
	raw := []byte{0xD0, 0x00, 0x00, 0x41, 0xA0, 0x00, 0x00, 0x00, 0x70, 0x00, 0x00, 0x00}
	var out bytes.Buffer
	e, err := Load(bytes.NewReader(raw), bytes.NewReader(nil), &out, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, e)
}
