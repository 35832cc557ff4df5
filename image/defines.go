package image

import (
	"bytes"
	"strings"
)

// TypeID of an encoded image stream
type TypeID int

// consts TypeID
const (
	TypeNone TypeID = iota
	TypeGIF
	TypeJPEG
	TypePNG
	TypeBMP
	TypeWEBP
)

// signatures
const (
	SigGIF  = "GIF8"
	SigJPEG = "\xff\xd8\xff"
	SigPNG  = "\211PNG\r\n\032\n"
	SigBMP  = "BM"
	SigRIFF = "RIFF"
	SigWEBP = "WEBP"
)

// GuessType sniffs the leading bytes of data
func GuessType(data []byte) TypeID {
	switch {
	case bytes.HasPrefix(data, []byte(SigGIF)):
		return TypeGIF
	case bytes.HasPrefix(data, []byte(SigJPEG)):
		return TypeJPEG
	case bytes.HasPrefix(data, []byte(SigPNG)):
		return TypePNG
	case len(data) >= 12 && string(data[:4]) == SigRIFF && string(data[8:12]) == SigWEBP:
		return TypeWEBP
	case len(data) >= HeadersSize && bytes.HasPrefix(data, []byte(SigBMP)):
		return TypeBMP
	}
	return TypeNone
}

// ExtByType returns the file extension with leading dot
func ExtByType(t TypeID) string {
	switch t {
	case TypeGIF:
		return ".gif"
	case TypeJPEG:
		return ".jpg"
	case TypePNG:
		return ".png"
	case TypeBMP:
		return ".bmp"
	case TypeWEBP:
		return ".webp"
	default:
		return ""
	}
}

// Ext2Format normalizes an extension or format name, "JPG" and ".jpeg" become "jpeg"
func Ext2Format(ext string) string {
	s := strings.ToLower(strings.TrimPrefix(ext, "."))
	if s == "jpg" {
		return "jpeg"
	}
	return s
}
