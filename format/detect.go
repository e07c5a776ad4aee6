// Package format detects the format of documents handed to the font audit.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PPTX indicates a Microsoft PowerPoint (.pptx) presentation.
	PPTX
	// Snapshot indicates a JSON document snapshot.
	Snapshot
	// PDF indicates a PDF document.
	PDF
	// DOCX indicates a Microsoft Word (.docx) document.
	DOCX
	// XLSX indicates a Microsoft Excel (.xlsx) workbook.
	XLSX
	// ODP indicates an OpenDocument presentation (.odp).
	ODP
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PPTX:
		return "PPTX"
	case Snapshot:
		return "Snapshot"
	case PDF:
		return "PDF"
	case DOCX:
		return "DOCX"
	case XLSX:
		return "XLSX"
	case ODP:
		return "ODP"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PPTX:
		return ".pptx"
	case Snapshot:
		return ".json"
	case PDF:
		return ".pdf"
	case DOCX:
		return ".docx"
	case XLSX:
		return ".xlsx"
	case ODP:
		return ".odp"
	default:
		return ""
	}
}

// Supported reports whether documents of this format can be audited.
// The other known formats are recognized only so they can be rejected with
// a precise message.
func (f Format) Supported() bool {
	return f == PPTX || f == Snapshot
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pptx":
		return PPTX
	case ".json":
		return Snapshot
	case ".pdf":
		return PDF
	case ".docx":
		return DOCX
	case ".xlsx":
		return XLSX
	case ".odp":
		return ODP
	default:
		return Unknown
	}
}

// DetectFromMagic checks leading bytes to determine format. ZIP archives
// return Unknown; use DetectFromReader to tell the OOXML formats apart.
func DetectFromMagic(data []byte) Format {
	if len(data) < 4 {
		return detectJSONMagic(data)
	}

	// PDF magic: %PDF
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return PDF
	}

	// ZIP magic: PK\x03\x04
	if isZIPMagic(data) {
		return Unknown
	}

	return detectJSONMagic(data)
}

func isZIPMagic(data []byte) bool {
	return len(data) >= 4 && data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04
}

// detectJSONMagic reports Snapshot when the data starts with a JSON object.
func detectJSONMagic(data []byte) Format {
	data = bytes.TrimLeft(data, " \t\r\n")
	// UTF-8 byte order mark
	data = bytes.TrimPrefix(data, []byte("\xEF\xBB\xBF"))
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) > 0 && data[0] == '{' {
		return Snapshot
	}
	return Unknown
}

// DetectFromReader inspects the content to determine format.
// This is more reliable than extension-based detection and can
// distinguish between different ZIP-based formats.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if isZIPMagic(magic) {
		return detectZIPFormat(r, size)
	}
	return DetectFromMagic(magic), nil
}

// detectZIPFormat inspects a ZIP archive for OOXML and OpenDocument markers.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	// OpenDocument packages start with a mimetype entry
	for _, f := range zr.File {
		if f.Name == "mimetype" {
			rc, err := f.Open()
			if err == nil {
				data := make([]byte, 256)
				n, _ := rc.Read(data)
				rc.Close()
				if strings.Contains(string(data[:n]), "application/vnd.oasis.opendocument.presentation") {
					return ODP, nil
				}
			}
		}
	}

	for _, f := range zr.File {
		switch {
		case f.Name == "[Content_Types].xml":
			continue
		case strings.HasPrefix(f.Name, "ppt/"):
			return PPTX, nil
		case strings.HasPrefix(f.Name, "word/"):
			return DOCX, nil
		case strings.HasPrefix(f.Name, "xl/"):
			return XLSX, nil
		}
	}

	return Unknown, nil
}
