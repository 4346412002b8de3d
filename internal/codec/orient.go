package codec

import (
	"errors"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	exif "github.com/dsoprea/go-exif/v3"
)

const orientationTag = 0x0112

// readOrientation returns the EXIF orientation (1-8) stored in rs. Images
// without a usable EXIF block report 1.
func readOrientation(rs io.ReadSeeker) (orientation int, err error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 1, err
	}

	// go-exif reports some malformed input by panicking.
	defer func() {
		if r := recover(); r != nil {
			orientation, err = 1, fmt.Errorf("exif: %v", r)
		}
	}()

	tags, _, err := exif.GetFlatExifDataUniversalSearchWithReadSeeker(rs, nil, true)
	if err != nil {
		if errorsIsNoExif(err) {
			return 1, nil
		}
		return 1, err
	}

	// IFD0 precedes the thumbnail IFD, so the first match is the image's own tag.
	for _, tag := range tags {
		if tag.TagId != orientationTag {
			continue
		}
		if v, ok := orientationValue(tag.Value); ok {
			return v, nil
		}
		return 1, nil
	}
	return 1, nil
}

func orientationValue(value interface{}) (int, bool) {
	var v int
	switch x := value.(type) {
	case []uint16:
		if len(x) == 0 {
			return 0, false
		}
		v = int(x[0])
	case uint16:
		v = int(x)
	case []uint32:
		if len(x) == 0 {
			return 0, false
		}
		v = int(x[0])
	default:
		return 0, false
	}
	if v < 1 || v > 8 {
		return 0, false
	}
	return v, true
}

func errorsIsNoExif(err error) bool {
	if errors.Is(err, exif.ErrNoExif) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no exif")
}

// applyOrientation returns img transformed so that it displays upright for
// the given EXIF orientation. Orientation 1 and unknown values return img as is.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
