package source

import (
	"crypto/sha256"
	"os"
)

// Flags describe normalization steps applied while loading a file.
type Flags uint8

const (
	// Virtual marks in-memory inputs (stdin, tests, generated content).
	Virtual Flags = 1 << iota
	// HadBOM is set when a UTF-8 byte order mark was stripped.
	HadBOM
	// NormalizedCRLF is set when at least one \r\n was rewritten to \n.
	NormalizedCRLF
	// HadUTF16 is set when the file was transcoded from UTF-16.
	HadUTF16
)

// Normalized reports whether loading rewrote any bytes, meaning Content no
// longer matches what is on disk.
func (f Flags) Normalized() bool {
	return f&(HadBOM|NormalizedCRLF|HadUTF16) != 0
}

// File holds normalized file content plus enough metadata to re-identify it.
type File struct {
	Path    string
	Content []byte
	Hash    [32]byte // sha256 поверх нормализованного содержимого
	Flags   Flags
}

// Load reads a file from disk and normalizes it: UTF-16 input is transcoded
// to UTF-8, a UTF-8 BOM is stripped, and CRLF line endings become plain LF.
// The hash is computed over the normalized bytes, so two files that differ
// only in encoding artifacts share a hash.
func Load(path string) (*File, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	flags := Flags(0)

	content, hadUTF16, err := decodeUTF16(content)
	if err != nil {
		return nil, err
	}
	if hadUTF16 {
		flags |= HadUTF16
	}

	content, hadBOM := removeBOM(content)
	if hadBOM {
		flags |= HadBOM
	}

	content, hadCRLF := normalizeCRLF(content)
	if hadCRLF {
		flags |= NormalizedCRLF
	}

	return &File{
		Path:    normalizePath(path),
		Content: content,
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	}, nil
}

// NewVirtual wraps in-memory content as a File without touching the disk.
// The content goes through the same CRLF normalization as Load so that
// virtual and on-disk inputs format identically.
func NewVirtual(name string, content []byte) *File {
	content, hadCRLF := normalizeCRLF(content)
	flags := Virtual
	if hadCRLF {
		flags |= NormalizedCRLF
	}
	return &File{
		Path:    name,
		Content: content,
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	}
}
