package repository

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pieceful-app/pieceful-server/internal/puzzle"
)

func TestEdgesCodecRoundTrip(t *testing.T) {
	e := puzzle.GenerateEdges(10, 10, rand.New(rand.NewPCG(1, 2)))

	h, v, err := EncodeEdges(e)
	assert.NoError(t, err)

	got, err := DecodeEdges(h, v)
	assert.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestDecodeEdgesEmptyStrings(t *testing.T) {
	got, err := DecodeEdges("", "")
	assert.NoError(t, err)
	assert.False(t, got.Fits(10, 10))
}

func TestDecodeEdgesMalformed(t *testing.T) {
	_, err := DecodeEdges("{broken", "[]")
	assert.Error(t, err)
}
