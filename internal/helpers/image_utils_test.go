package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safety-worker-go/internal/models"
)

func TestIsJPEGData(t *testing.T) {
	assert.True(t, isJPEGData([]byte{0xFF, 0xD8, 0xFF}))
	assert.False(t, isJPEGData([]byte{0xFF}))
	assert.False(t, isJPEGData([]byte{0x89, 0x50}))
}

func TestGuessDimensionsFromLength(t *testing.T) {
	w, h, ok := guessDimensionsFromLength(640 * 480 * 3)
	require.True(t, ok)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)

	w, h, ok = guessDimensionsFromLength(320 * 7 * 3)
	require.True(t, ok)
	assert.Equal(t, 320, w)
	assert.Equal(t, 7, h)

	_, _, ok = guessDimensionsFromLength(10)
	assert.False(t, ok)
	_, _, ok = guessDimensionsFromLength(0)
	assert.False(t, ok)
}

func TestJPEGPassThrough(t *testing.T) {
	jpeg := []byte{0xFF, 0xD8, 0x01, 0x02}
	frame := &models.Frame{Data: jpeg, Width: 2, Height: 2}

	out, err := NewJPEGEncoder(0).Encode(frame)
	require.NoError(t, err)
	assert.Equal(t, jpeg, out)
}

func TestEncodeBGR(t *testing.T) {
	bgr := make([]byte, 320*240*3)
	out, err := NewJPEGEncoder(MediumQuality).Encode(&models.Frame{Data: bgr, Width: 320, Height: 240})
	require.NoError(t, err)
	assert.True(t, isJPEGData(out))
}

func TestEncodeErrors(t *testing.T) {
	enc := NewJPEGEncoder(90)
	_, err := enc.Encode(nil)
	assert.Error(t, err)
	_, err = enc.Encode(&models.Frame{})
	assert.Error(t, err)
	_, err = enc.Encode(&models.Frame{Data: []byte{1, 2, 3, 4}})
	assert.Error(t, err)
}
