package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/curie-ml/curie/internal/tensor"

	// Standard decoders register themselves with image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	// Extended decoders from golang.org/x/image.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// stdExtensions are the file extensions StdReader accepts.
var stdExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// StdReader decodes common raster formats (PNG, JPEG, GIF, BMP, TIFF, WebP)
// into H×W×C uint8 arrays. Grayscale images produce a single channel, all
// other images three RGB channels.
type StdReader struct{}

// NewStdReader returns a reader for the standard raster formats.
func NewStdReader() *StdReader {
	return &StdReader{}
}

// CanRead reports whether path has a supported extension.
func (r *StdReader) CanRead(path string) bool {
	return stdExtensions[strings.ToLower(filepath.Ext(path))]
}

// Read decodes the file at path.
//
// The returned metadata carries spatial_shape = {H, W}, channels on the last
// axis, and no affine: 2-D natural images have no orientation matrix.
func (r *StdReader) Read(path string) (*tensor.Dense, *tensor.Meta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, nil, fmt.Errorf("decode %s: %w", path, err)
	}

	arr, err := toDense(img)
	if err != nil {
		return nil, nil, fmt.Errorf("convert %s: %w", path, err)
	}

	meta := tensor.DirectMeta(arr.Shape())
	meta.Extra["format"] = format
	meta.Extra["filename_or_obj"] = path
	return arr, meta, nil
}

// toDense converts a decoded image into an H×W×C uint8 array.
func toDense(img image.Image) (*tensor.Dense, error) {
	bounds := img.Bounds()
	h, w := bounds.Dy(), bounds.Dx()

	if gray, ok := img.(*image.Gray); ok {
		arr, err := tensor.NewDense(tensor.Shape{h, w, 1}, tensor.Uint8)
		if err != nil {
			return nil, err
		}
		data := arr.AsUint8()
		for y := 0; y < h; y++ {
			row := gray.Pix[y*gray.Stride : y*gray.Stride+w]
			copy(data[y*w:], row)
		}
		return arr, nil
	}

	arr, err := tensor.NewDense(tensor.Shape{h, w, 3}, tensor.Uint8)
	if err != nil {
		return nil, err
	}
	data := arr.AsUint8()
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			data[i] = uint8(cr >> 8)
			data[i+1] = uint8(cg >> 8)
			data[i+2] = uint8(cb >> 8)
			i += 3
		}
	}
	return arr, nil
}
