package imageprobe

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)))
	if err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestProbePNG(t *testing.T) {
	info, err := Probe(encodePNG(t, 320, 200))

	assert.NoError(t, err)
	assert.Equal(t, 320, info.Width)
	assert.Equal(t, 200, info.Height)
	assert.InDelta(t, 1.6, info.Aspect, 1e-9)
	assert.Equal(t, "png", info.Format)
}

func TestProbeGarbage(t *testing.T) {
	_, err := Probe([]byte("not an image"))
	assert.Error(t, err)
}
