package reader

import (
	"bytes"
	"image"
	"image/png"

	_ "image/jpeg"

	_ "golang.org/x/image/tiff"
)

// decodedImage is one embedded image converted for downstream use. width
// and height are the intrinsic pixel dimensions; png holds re-encoded
// bytes when the source format could be decoded.
type decodedImage struct {
	name   string
	width  int
	height int
	png    []byte
}

// decodeImageData turns the data pdfcpu extracted for an XObject into a
// decodedImage. pdfcpu hands images over in their natural file format
// (png, jpg, tiff); anything it could not convert arrives in a format the
// decoders reject and is kept as a name-only stub, since a placement with
// unknown pixel dimensions is still useful to the detectors.
func decodeImageData(name, fileType string, data []byte) decodedImage {
	out := decodedImage{name: name}
	if len(data) == 0 {
		return out
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return out
	}
	out.width = cfg.Width
	out.height = cfg.Height

	if fileType == "png" {
		out.png = data
		return out
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return out
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return out
	}
	out.png = buf.Bytes()
	return out
}
