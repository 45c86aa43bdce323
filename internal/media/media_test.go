package media

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	d, err := parseDuration(`{"format":{"filename":"a.mp4","duration":"12.480000"}}`)
	require.NoError(t, err)
	assert.InDelta(t, 12.48, d, 0.0001)

	d, err = parseDuration(`{"format":{}}`)
	require.NoError(t, err)
	assert.Zero(t, d)

	_, err = parseDuration(`not json`)
	assert.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	ref, err := s.Upload(ctx, Upload{Kind: KindVideo, Filename: "clip.MP4", Body: strings.NewReader("data")})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref.Key, "videos/"))
	assert.True(t, strings.HasSuffix(ref.Key, ".mp4"))
	assert.True(t, s.Has(ref.Key))

	require.NoError(t, s.Delete(ctx, ref.Key))
	assert.False(t, s.Has(ref.Key))

	s.FailUpload = true
	_, err = s.Upload(ctx, Upload{Kind: KindThumbnail, Filename: "a.jpg"})
	assert.ErrorIs(t, err, ErrUploadFailed)
}
