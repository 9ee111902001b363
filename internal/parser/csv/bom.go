package csv

import "bytes"

var utf8BOM = []byte("\uFEFF")

// StripBOM removes a leading UTF-8 byte order mark.
func StripBOM(b []byte) []byte {
	return bytes.TrimPrefix(b, utf8BOM)
}
