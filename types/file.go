package types

import (
	"encoding/json"
	"io"
	"strings"
)

// File is a binary field of a multipart request body. Multipart encoding
// writes Content as a file part; in JSON a File encodes as null.
type File struct {
	Name        string // file name sent with the part, defaults to the field name
	ContentType string // defaults to application/octet-stream
	Content     io.Reader
}

// MarshalJSON encodes f as null.
func (File) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// UnmarshalJSON keeps a JSON string as the file content.
func (f *File) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s != nil {
		f.Content = strings.NewReader(*s)
	}
	return nil
}
