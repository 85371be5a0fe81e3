package normalize

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sozercan/legal-simplify/internal/extract"
	"github.com/sozercan/legal-simplify/internal/extract/extracttest"
)

// recordingExtractor returns a fixed text and remembers what it was given.
type recordingExtractor struct {
	text  string
	err   error
	calls int
	got   []byte
}

func (e *recordingExtractor) ExtractText(data []byte) (string, error) {
	e.calls++
	e.got = data
	return e.text, e.err
}

func newTestNormalizer(pdf, word *recordingExtractor) *Normalizer {
	return &Normalizer{
		Extractors: map[string]extract.Extractor{
			"pdf":  pdf,
			"doc":  word,
			"docx": word,
		},
	}
}

func jsonRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/simplify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

type formFile struct {
	field, name string
	data        []byte
}

func uploadRequest(t *testing.T, files ...formFile) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("note", "ignored"))
	for _, f := range files {
		w, err := mw.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = w.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/simplify", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestNormalizeJSONReturnsTextUnchanged(t *testing.T) {
	n := New()
	text := "  This agreement binds both parties...\n"

	got, err := n.Normalize(context.Background(), jsonRequest(`{"legalText":"  This agreement binds both parties...\n"}`))
	require.NoError(t, err)
	assert.Equal(t, text, got, "only the emptiness check trims")
}

func TestNormalizeJSONEmpty(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty string", `{"legalText":""}`},
		{"whitespace", `{"legalText":" \n\t "}`},
		{"missing field", `{"other":"x"}`},
		{"null", `{"legalText":null}`},
		{"false", `{"legalText":false}`},
		{"zero", `{"legalText":0}`},
		{"empty body", ``},
		{"array body", `[]`},
		{"string body", `"This agreement"`},
		{"number body", `5`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Normalize(context.Background(), jsonRequest(tt.body))
			assert.ErrorIs(t, err, ErrEmptyInput)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestNormalizeJSONMalformedIsNotInvalidInput(t *testing.T) {
	tests := []string{
		`{"legalText":`,
		`{"legalText": 42}`,
		`{"legalText": true}`,
		`{"legalText": ["a"]}`,
		`null`,
		"  \n",
		`not json`,
	}
	for _, body := range tests {
		_, err := New().Normalize(context.Background(), jsonRequest(body))
		require.Error(t, err, body)
		assert.False(t, errors.Is(err, ErrInvalidInput), "malformed body %q should be an internal failure", body)
	}
}

func TestNormalizeWithoutContentTypeReadsJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/simplify", strings.NewReader(`{"legalText":"hello"}`))

	got, err := New().Normalize(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestNormalizeUploadDispatchesByExtension(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		wantPDF  int
		wantWord int
	}{
		{"pdf", "lease.pdf", 1, 0},
		{"upper-case pdf", "LEASE.PDF", 1, 0},
		{"docx", "nda.docx", 0, 1},
		{"mixed-case docx", "nda.DocX", 0, 1},
		{"doc", "old.doc", 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pdf := &recordingExtractor{text: "pdf text"}
			word := &recordingExtractor{text: "word text"}
			n := newTestNormalizer(pdf, word)

			data := []byte("file bytes")
			got, err := n.Normalize(context.Background(), uploadRequest(t, formFile{"file", tt.file, data}))
			require.NoError(t, err)

			assert.Equal(t, tt.wantPDF, pdf.calls)
			assert.Equal(t, tt.wantWord, word.calls)
			if tt.wantPDF == 1 {
				assert.Equal(t, "pdf text", got)
				assert.Equal(t, data, pdf.got)
			} else {
				assert.Equal(t, "word text", got)
				assert.Equal(t, data, word.got)
			}
		})
	}
}

func TestNormalizeUploadRejectsBeforeExtraction(t *testing.T) {
	tests := []string{"notes.txt", "contract", "archive.pdf.zip", "image.png"}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			pdf := &recordingExtractor{text: "x"}
			word := &recordingExtractor{text: "x"}
			n := newTestNormalizer(pdf, word)

			_, err := n.Normalize(context.Background(), uploadRequest(t, formFile{"file", name, []byte("data")}))
			assert.ErrorIs(t, err, ErrUnsupportedFileType)
			assert.Zero(t, pdf.calls+word.calls, "no extractor may run for %q", name)
		})
	}
}

func TestNormalizeUploadWithoutFilePart(t *testing.T) {
	pdf := &recordingExtractor{text: "x"}
	n := newTestNormalizer(pdf, &recordingExtractor{})

	_, err := n.Normalize(context.Background(), uploadRequest(t))
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
	assert.Zero(t, pdf.calls)
}

func TestNormalizeUploadKeepsFirstFile(t *testing.T) {
	pdf := &recordingExtractor{text: "first"}
	word := &recordingExtractor{text: "second"}
	n := newTestNormalizer(pdf, word)

	got, err := n.Normalize(context.Background(), uploadRequest(t,
		formFile{"file", "a.pdf", []byte("one")},
		formFile{"file", "b.docx", []byte("two")},
	))
	require.NoError(t, err)
	assert.Equal(t, "first", got)
	assert.Equal(t, []byte("one"), pdf.got)
	assert.Zero(t, word.calls)
}

func TestNormalizeUploadBlankExtraction(t *testing.T) {
	pdf := &recordingExtractor{text: "  \n "}
	n := newTestNormalizer(pdf, &recordingExtractor{})

	_, err := n.Normalize(context.Background(), uploadRequest(t, formFile{"file", "scan.pdf", []byte("x")}))
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestNormalizeUploadBlankDocuments(t *testing.T) {
	tests := []struct {
		name string
		file string
		data []byte
	}{
		{"pdf without text", "scan.pdf", extracttest.PDF(t, "")},
		{"empty docx", "blank.docx", extracttest.Docx(t, `<w:p></w:p>`)},
		{"whitespace docx", "blank.docx", extracttest.Docx(t, `<w:p><w:r><w:t>   </w:t></w:r></w:p>`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Normalize(context.Background(), uploadRequest(t, formFile{"file", tt.file, tt.data}))
			assert.ErrorIs(t, err, ErrEmptyInput)
		})
	}
}

func TestNormalizeUploadExtractorFailure(t *testing.T) {
	boom := errors.New("corrupt xref")
	pdf := &recordingExtractor{err: boom}
	n := newTestNormalizer(pdf, &recordingExtractor{})

	_, err := n.Normalize(context.Background(), uploadRequest(t, formFile{"file", "broken.pdf", []byte("x")}))
	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, ErrInvalidInput))
}

func TestNormalizeUploadTruncatedBody(t *testing.T) {
	req := uploadRequest(t, formFile{"file", "a.pdf", []byte("data")})
	full, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	req.Body = io.NopCloser(bytes.NewReader(full[:len(full)/2]))

	_, err = New().Normalize(context.Background(), req)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidInput))
}

func TestUploadExt(t *testing.T) {
	assert.Equal(t, "pdf", Upload{FileName: "a.b.PDF"}.Ext())
	assert.Equal(t, "", Upload{FileName: "README"}.Ext())
	assert.Equal(t, "", Upload{FileName: ""}.Ext())
	assert.Equal(t, "docx", Upload{FileName: "dir/x.docx"}.Ext())
}
