package imagefile

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLoadPNG(t *testing.T) {
	data := pngBytes(t)
	path := filepath.Join(t.TempDir(), "bottle.png")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	img, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "bottle.png", img.Filename)
	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, len(data), img.Size())

	url := img.DataURL()
	require.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestLoadRejectsOversizedBeforeReading(t *testing.T) {
	path := filepath.Join(t.TempDir(), "huge.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(MaxSize+1))
	require.NoError(t, f.Close())

	// Unreadable file: only the size check can produce the error.
	require.NoError(t, os.Chmod(path, 0o000))
	t.Cleanup(func() { os.Chmod(path, 0o600) })

	_, err = Load(path)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestLoadAcceptsExactlyMaxSize(t *testing.T) {
	data := pngBytes(t)
	padded := make([]byte, MaxSize)
	copy(padded, data)

	img, err := FromBytes("max.png", padded)
	require.NoError(t, err)
	assert.Equal(t, MaxSize, img.Size())
}

func TestFromBytesRejectsNonImages(t *testing.T) {
	_, err := FromBytes("notes.txt", []byte("just some text"))
	assert.ErrorIs(t, err, ErrNotAnImage)

	_, err = FromBytes("empty.png", nil)
	assert.ErrorIs(t, err, ErrEmptyUpload)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
