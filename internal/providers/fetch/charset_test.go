package fetch

import (
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var errBrokenDecoder = errors.New("broken decoder")

// brokenEncoding fails every decode
type brokenEncoding struct{}

func (brokenEncoding) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: brokenTransformer{}}
}

func (brokenEncoding) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: transform.Nop}
}

type brokenTransformer struct{ transform.NopResetter }

func (brokenTransformer) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	return 0, 0, errBrokenDecoder
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name        string
		body        []byte
		contentType string
		want        string
		wantCharset string
	}{
		{
			name:        "empty body",
			body:        nil,
			want:        "",
			wantCharset: "utf-8",
		},
		{
			name:        "plain utf-8",
			body:        []byte("<p>Yale 世界</p>"),
			contentType: "text/html",
			want:        "<p>Yale 世界</p>",
			wantCharset: "utf-8",
		},
		{
			name:        "byte order mark is stripped",
			body:        append([]byte{0xEF, 0xBB, 0xBF}, []byte("<p>Yale</p>")...),
			want:        "<p>Yale</p>",
			wantCharset: "utf-8",
		},
		{
			name:        "header charset",
			body:        []byte("<p>na\xefve</p>"),
			contentType: "text/html; charset=ISO-8859-1",
			want:        "<p>naïve</p>",
			wantCharset: "windows-1252",
		},
		{
			name:        "meta charset",
			body:        []byte("<html><head><meta charset=\"windows-1251\"></head><body>\xcf\xf0\xe8\xe2\xe5\xf2</body></html>"),
			want:        `<html><head><meta charset="windows-1251"></head><body>Привет</body></html>`,
			wantCharset: "windows-1251",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, name := Decode(tt.body, tt.contentType)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCharset, name)
		})
	}
}

func TestDecodeUndeclaredLatin1(t *testing.T) {
	body := []byte("<html><body><p>Caf\xe9 au lait, cr\xe8me br\xfbl\xe9e et na\xefvet\xe9 \xe0 Yale.</p></body></html>")

	got, _ := Decode(body, "")

	assert.True(t, utf8.ValidString(got))
	assert.Contains(t, got, "Yale")
}

func TestDetectCharset(t *testing.T) {
	assert.Equal(t, "utf-8", DetectCharset([]byte("<p>Hello 世界 🌍 and more UTF-8 text ✓</p>")))
}

func TestDecodeWithFailureClearsCharset(t *testing.T) {
	body := []byte("<p>Yale \xe9</p>")

	got, name := decodeWith(brokenEncoding{}, "windows-1252", body)

	assert.Equal(t, string(body), got)
	assert.Empty(t, name)
}

func TestDecodeWithReportsCharset(t *testing.T) {
	got, name := decodeWith(charmap.Windows1252, "windows-1252", []byte("caf\xe9"))

	assert.Equal(t, "café", got)
	assert.Equal(t, "windows-1252", name)
}
