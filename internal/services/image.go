package services

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/disintegration/imaging"

	"zenmarket/internal/models"
)

// DefaultMaxImageWidth caps the width of processed visuals
const DefaultMaxImageWidth = 1280

// VisualProcessor crops generated images to the requested aspect ratio
// and encodes them as data URLs
type VisualProcessor struct {
	maxWidth int
}

func NewVisualProcessor(maxWidth int) *VisualProcessor {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxImageWidth
	}
	return &VisualProcessor{maxWidth: maxWidth}
}

// Process decodes a png or jpeg payload, fills it to the ratio and re-encodes it
func (p *VisualProcessor) Process(data []byte, ratio models.AspectRatio) (*models.Visual, error) {
	mime := http.DetectContentType(data)
	var format imaging.Format
	switch mime {
	case "image/png":
		format = imaging.PNG
	case "image/jpeg":
		format = imaging.JPEG
	default:
		return nil, &AIError{Op: "process image", Kind: ErrAIMalformedResponse, Err: fmt.Errorf("unsupported image type %s", mime)}
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &AIError{Op: "process image", Kind: ErrAIMalformedResponse, Err: err}
	}

	if !ratio.IsValid() {
		ratio = models.DefaultAspectRatio
	}
	width, height := p.targetSize(img.Bounds().Dx(), ratio)

	filled := imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, filled, format, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &models.Visual{
		DataURL:  fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(buf.Bytes())),
		MIMEType: mime,
		Ratio:    ratio,
		Width:    width,
		Height:   height,
	}, nil
}

// targetSize keeps the source width up to maxWidth and derives the height from the ratio
func (p *VisualProcessor) targetSize(sourceWidth int, ratio models.AspectRatio) (int, int) {
	rw, rh := ratio.Dimensions()

	width := sourceWidth
	if width > p.maxWidth {
		width = p.maxWidth
	}
	height := width * rh / rw
	if height < 1 {
		height = 1
	}
	return width, height
}
