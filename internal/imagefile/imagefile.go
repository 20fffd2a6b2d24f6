// Package imagefile loads product images picked by the operator, checks
// them, and produces the preview form shown before upload.
package imagefile

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const MaxSize = 5 * 1024 * 1024

var (
	ErrTooLarge    = errors.New("image too large: maximum file size is 5MB")
	ErrNotAnImage  = errors.New("file is not a supported image")
	ErrEmptyUpload = errors.New("image file is empty")
)

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
	"image/avif": true,
}

type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Load reads the image at path. The size limit is checked against the file
// metadata so oversized files are rejected without being read.
func Load(path string) (*Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat image: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > MaxSize {
		return nil, ErrTooLarge
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return FromBytes(filepath.Base(path), data)
}

func FromBytes(filename string, data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyUpload
	}
	if len(data) > MaxSize {
		return nil, ErrTooLarge
	}

	mt := mimetype.Detect(data)
	contentType := strings.SplitN(mt.String(), ";", 2)[0]
	if !allowedTypes[contentType] {
		return nil, fmt.Errorf("%w: detected %s", ErrNotAnImage, contentType)
	}

	return &Image{
		Filename:    filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

// DataURL is the displayable preview of the image.
func (i *Image) DataURL() string {
	return "data:" + i.ContentType + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

func (i *Image) Size() int { return len(i.Data) }
