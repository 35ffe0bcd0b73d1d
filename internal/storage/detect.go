package storage

import (
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrImageTooLarge    = errors.New("image too large")
)

var allowedImageTypes = []string{"image/png", "image/jpeg", "image/webp"}

// Image is an upload that passed ReadImage.
type Image struct {
	Data        []byte
	ContentType string
	Extension   string
}

// ReadImage reads at most maxSize bytes and accepts PNG, JPEG and WebP content only.
func ReadImage(r io.Reader, maxSize int64) (*Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%w: limit is %s", ErrImageTooLarge, humanize.IBytes(uint64(maxSize)))
	}

	mtype := mimetype.Detect(data)
	for _, allowed := range allowedImageTypes {
		if mtype.Is(allowed) {
			return &Image{Data: data, ContentType: allowed, Extension: mtype.Extension()}, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, mtype.String())
}
