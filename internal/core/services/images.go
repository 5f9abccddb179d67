package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"

	// Register the formats uploaded photos arrive in.
	_ "image/gif"
	_ "image/png"

	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/custodia-labs/sitecheck-cli/internal/core/domain"
	"github.com/custodia-labs/sitecheck-cli/internal/core/ports/driven"
	"github.com/custodia-labs/sitecheck-cli/internal/core/ports/driving"
	"github.com/custodia-labs/sitecheck-cli/internal/logger"
)

// Ensure Images implements the interface.
var _ driving.ImageService = (*Images)(nil)

const (
	// ImagesDir is the repository directory holding image blobs.
	ImagesDir = "images"

	// ImageSuffix is appended to generated image names. Backing
	// repositories written by earlier versions of this tool hold their
	// blobs under .txt names regardless of format; new writes keep the
	// suffix so one directory never mixes two naming schemes.
	ImageSuffix = ".txt"

	thumbMaxWidth  = 800
	thumbMaxHeight = 600
	jpegQuality    = 85
)

// Images stores defect photos in the backing repository. Photos are
// thumbnailed, re-encoded as JPEG and persisted base64-encoded, one
// file per photo under images/. Records reference photos by path only;
// deleting a record never deletes its photo.
type Images struct {
	files driven.FileStore
}

// NewImages creates an image store over the given file store.
func NewImages(files driven.FileStore) *Images {
	return &Images{files: files}
}

// Save stores the image under images/<name> and returns the stored
// path. When name is empty a random name is generated. Identical bytes
// saved under different names produce separate blobs; there is no
// deduplication, validation or size limit.
func (s *Images) Save(ctx context.Context, data []byte, name string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty image", domain.ErrInvalidInput)
	}
	if name == "" {
		name = uuid.NewString() + ImageSuffix
	}

	thumb, err := makeThumbnail(data)
	if err != nil {
		return "", fmt.Errorf("prepare image %s: %w", name, err)
	}

	encoded := base64.StdEncoding.EncodeToString(thumb)
	path := ImagesDir + "/" + name
	if err := upsertFile(ctx, s.files, path, []byte(encoded)); err != nil {
		return "", err
	}

	logger.Debug("stored image %s (%d bytes encoded)", path, len(encoded))
	return path, nil
}

// ClearAll deletes every file under images/. The sweep is best effort:
// an individual deletion failure is logged and the remaining entries
// are still attempted. A missing images/ directory is not an error.
func (s *Images) ClearAll(ctx context.Context) error {
	entries, err := s.files.ListDirectory(ctx, ImagesDir)
	if err != nil {
		if errors.Is(err, domain.ErrFileNotFound) {
			return nil
		}
		return fmt.Errorf("list %s: %w", ImagesDir, err)
	}

	for _, entry := range entries {
		if err := s.files.Delete(ctx, entry.Path, "Delete "+entry.Name, entry.SHA); err != nil {
			logger.Warn("delete %s: %v", entry.Path, err)
		}
	}
	return nil
}

// makeThumbnail decodes the image, scales it to fit within
// thumbMaxWidth x thumbMaxHeight without upscaling, and re-encodes it
// as JPEG.
func makeThumbnail(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if width > thumbMaxWidth || height > thumbMaxHeight {
		scale := min(
			float64(thumbMaxWidth)/float64(width),
			float64(thumbMaxHeight)/float64(height),
		)
		width = int(float64(width) * scale)
		height = int(float64(height) * scale)
		if width < 1 {
			width = 1
		}
		if height < 1 {
			height = 1
		}

		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), nil
}
