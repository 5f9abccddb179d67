package cli

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestImage writes a small PNG to a temp file and returns its path.
func writeTestImage(t *testing.T) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	path := filepath.Join(t.TempDir(), "defect.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0600))
	return path
}

func TestImageCmd_Use(t *testing.T) {
	assert.Equal(t, "image", imageCmd.Use)
}

func TestImageCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range imageCmd.Commands() {
		names[c.Name()] = true
	}

	assert.True(t, names["save"])
	assert.True(t, names["clear"])
}

func TestImageSave_Executes(t *testing.T) {
	store := wireTestServices(t)
	imageSaveName = ""

	output, err := execute(t, "image", "save", writeTestImage(t))

	require.NoError(t, err)
	assert.Contains(t, output, "Image stored at images/defect.png")

	_, err = store.Get(context.Background(), "images/defect.png")
	assert.NoError(t, err)
}

func TestImageSave_CustomName(t *testing.T) {
	store := wireTestServices(t)

	output, err := execute(t, "image", "save", writeTestImage(t), "--name", "custom.txt")

	require.NoError(t, err)
	assert.Contains(t, output, "Image stored at images/custom.txt")

	_, err = store.Get(context.Background(), "images/custom.txt")
	assert.NoError(t, err)
}

func TestImageSave_MissingFile(t *testing.T) {
	wireTestServices(t)
	imageSaveName = ""

	_, err := execute(t, "image", "save", filepath.Join(t.TempDir(), "nope.png"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read image file")
}

func TestImageClear_Executes(t *testing.T) {
	store := wireTestServices(t)
	imageSaveName = ""

	_, err := execute(t, "image", "save", writeTestImage(t))
	require.NoError(t, err)

	output, err := execute(t, "image", "clear")
	require.NoError(t, err)
	assert.Contains(t, output, "Images cleared.")
	assert.Equal(t, 0, store.Len())
}
