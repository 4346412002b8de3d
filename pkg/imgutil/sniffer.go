package imgutil

import (
	"errors"
	"io"
)

// Kind identifies an image container by its leading bytes.
type Kind int

const (
	KindUnknown Kind = iota
	KindJPEG
	KindPNG
	KindWebP
	KindGIF
)

func (k Kind) String() string {
	switch k {
	case KindJPEG:
		return "jpeg"
	case KindPNG:
		return "png"
	case KindWebP:
		return "webp"
	case KindGIF:
		return "gif"
	default:
		return "unknown"
	}
}

// Decodable reports whether the converter has a decoder for k.
func (k Kind) Decodable() bool {
	return k == KindJPEG || k == KindPNG
}

// HeaderSize is the number of leading bytes DetectHeader needs.
const HeaderSize = 12

var (
	pngSig  = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}
	jpegSig = []byte{0xff, 0xd8, 0xff}
	gifSig  = []byte("GIF8")
	riffSig = []byte("RIFF")
	webpSig = []byte("WEBP")
)

var ErrShortHeader = errors.New("header too short")

// DetectHeader inspects the first HeaderSize bytes of a file for known signatures.
func DetectHeader(header []byte) (Kind, error) {
	if len(header) < HeaderSize {
		return KindUnknown, ErrShortHeader
	}

	switch {
	case hasPrefix(header, jpegSig):
		return KindJPEG, nil
	case hasPrefix(header, pngSig):
		return KindPNG, nil
	case hasPrefix(header, gifSig):
		return KindGIF, nil
	case hasPrefix(header, riffSig) && hasPrefix(header[8:], webpSig):
		return KindWebP, nil
	}

	return KindUnknown, nil
}

// SniffReader reads the first HeaderSize bytes from r and determines its type.
// Files shorter than the header are reported as ErrShortHeader.
func SniffReader(r io.Reader) (Kind, error) {
	header := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return KindUnknown, ErrShortHeader
		}
		return KindUnknown, err
	}

	return DetectHeader(header)
}

func hasPrefix(buf, prefix []byte) bool {
	if len(buf) < len(prefix) {
		return false
	}
	for i := range prefix {
		if buf[i] != prefix[i] {
			return false
		}
	}
	return true
}
