package folio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp"

	"github.com/eringen/folio/export"
	"github.com/eringen/folio/project"
)

var (
	ErrUploadTooLarge = errors.New("folio: upload too large")
	ErrUploadFormat   = errors.New("folio: unsupported upload format")
)

// imageFormats are the decoders registered above.
var imageFormats = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// readUpload checks an uploaded file against the ceiling and the block
// kind, returning an in-memory handle.
func readUpload(fh *multipart.FileHeader, kind project.Kind, max int64) (*project.Upload, error) {
	if fh.Size > max {
		return nil, fmt.Errorf("%w (max %dMB)", ErrUploadTooLarge, max>>20)
	}
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return Intake(src, fh.Filename, kind, max)
}

// Intake reads an upload for a block of kind. Images must decode as JPEG,
// PNG, GIF or WebP; videos must sniff as any video/* type (MP4, QuickTime,
// WebM, Matroska, Ogg, 3GP and so on).
func Intake(r io.Reader, name string, kind project.Kind, max int64) (*project.Upload, error) {
	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > max {
		return nil, fmt.Errorf("%w (max %dMB)", ErrUploadTooLarge, max>>20)
	}

	u := &project.Upload{Name: export.SafeName(name), Data: data}
	switch kind {
	case project.KindImage:
		cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: not a JPEG, PNG, GIF or WebP image", ErrUploadFormat)
		}
		u.ContentType = imageFormats[format]
		u.Width, u.Height = cfg.Width, cfg.Height
	case project.KindVideo:
		mt := mimetype.Detect(data)
		if !strings.HasPrefix(mt.String(), "video/") {
			return nil, fmt.Errorf("%w: not a video file (%s)", ErrUploadFormat, mt)
		}
		u.ContentType = mt.String()
	default:
		return nil, project.ErrNotMedia
	}
	return u, nil
}
