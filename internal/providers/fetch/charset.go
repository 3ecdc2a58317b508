package fetch

import (
	"bytes"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

const utf8Name = "utf-8"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode converts body to UTF-8 text and reports the charset it used.
// The Content-Type header, a byte order mark and a <meta> declaration are
// consulted in that order; when none is conclusive and the bytes are not
// valid UTF-8, chardet picks the charset. Decoding never fails: undecodable
// input is returned as-is with an empty charset.
func Decode(body []byte, contentType string) (string, string) {
	if len(body) == 0 {
		return "", utf8Name
	}

	enc, name, certain := charset.DetermineEncoding(body, contentType)
	if !certain && name == "windows-1252" {
		// windows-1252 is the fallback guess; ask the detector instead
		if detected := DetectCharset(body); detected != "" {
			if e, n := charset.Lookup(detected); e != nil {
				enc, name = e, n
			}
		}
	}

	if name == utf8Name {
		return string(bytes.TrimPrefix(body, utf8BOM)), utf8Name
	}

	return decodeWith(enc, name, body)
}

// decodeWith transcodes body to UTF-8. On failure the raw bytes come back
// with an empty charset, since their encoding is unknown.
func decodeWith(enc encoding.Encoding, name string, body []byte) (string, string) {
	out, _, err := transform.Bytes(enc.NewDecoder(), body)
	if err != nil {
		return string(body), ""
	}
	return string(out), name
}

// DetectCharset guesses the charset of raw bytes, or returns "" when the
// detector has no answer
func DetectCharset(data []byte) string {
	detector := chardet.NewHtmlDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return ""
	}
	return strings.ToLower(result.Charset)
}
