package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
)

// ImageProcessor resizes uploaded pictures of cabins and guests.
type ImageProcessor struct {
	quality int
}

// NewImageProcessor creates a new ImageProcessor.
func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{quality: 80}
}

// GenerateThumbnail fits the source image into maxWidth x maxHeight and returns it as a JPEG.
func (p *ImageProcessor) GenerateThumbnail(content io.Reader, maxWidth, maxHeight int) (io.Reader, error) {
	return p.fit(content, maxWidth, maxHeight)
}

// Downscale shrinks images larger than the bounding box and re-encodes them as JPEG.
// Smaller images are re-encoded without resizing.
func (p *ImageProcessor) Downscale(content io.Reader, maxWidth, maxHeight int) (io.Reader, error) {
	return p.fit(content, maxWidth, maxHeight)
}

func (p *ImageProcessor) fit(content io.Reader, maxWidth, maxHeight int) (io.Reader, error) {
	img, _, err := image.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	// imaging.Fit never upscales.
	out := imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, out, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return buf, nil
}
