// Package normalize turns an analysis request, either a JSON body or a
// multipart file upload, into the plain text that gets analyzed.
package normalize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/sozercan/legal-simplify/apimodels"
	"github.com/sozercan/legal-simplify/internal/extract"
)

var (
	// ErrInvalidInput is the parent of every error caused by what the
	// client sent rather than by a failure on our side.
	ErrInvalidInput = errors.New("invalid input")

	ErrEmptyInput          = fmt.Errorf("%w: no legal text provided", ErrInvalidInput)
	ErrUnsupportedFileType = fmt.Errorf("%w: unsupported file type", ErrInvalidInput)
)

// Upload is the single file recovered from a multipart request.
type Upload struct {
	FileName string
	Data     []byte
}

// Ext returns the lower-cased extension without the dot, or "" when the
// name has none.
func (u Upload) Ext() string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(path.Base(u.FileName)), "."))
}

type Normalizer struct {
	// Extractors maps a lower-case file extension to its text extractor.
	Extractors map[string]extract.Extractor
}

// New returns a Normalizer that understands PDF and Word uploads.
func New() *Normalizer {
	word := extract.Word{}
	return &Normalizer{
		Extractors: map[string]extract.Extractor{
			"pdf":  extract.PDF{},
			"doc":  word,
			"docx": word,
		},
	}
}

// Normalize reads the request body to completion and returns the text to
// analyze. The text is returned as sent; trimming is only used to decide
// whether it is empty.
func (n *Normalizer) Normalize(ctx context.Context, r *http.Request) (string, error) {
	var (
		text string
		err  error
	)
	if isMultipart(r.Header.Get("Content-Type")) {
		text, err = n.fromUpload(ctx, r)
	} else {
		text, err = n.fromJSON(r.Body)
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyInput
	}
	return text, nil
}

func isMultipart(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "multipart/form-data"
}

// errNullBody is a JSON body of null, which has no fields to read.
var errNullBody = errors.New("request body is null")

func (n *Normalizer) fromJSON(body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read request body: %w", err)
	}
	if len(data) == 0 {
		return "", nil
	}

	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return "", fmt.Errorf("decode request body: %w", err)
	}
	fields, ok := decoded.(map[string]any)
	if !ok {
		if decoded == nil {
			return "", errNullBody
		}
		// arrays and scalars carry no legalText
		return "", nil
	}

	var req apimodels.AnalysisRequest
	if err := json.Unmarshal(data, &req); err == nil {
		return req.LegalText, nil
	}
	legalText := fields["legalText"]
	if !isSet(legalText) {
		return "", nil
	}
	return "", fmt.Errorf("decode request body: legalText is %T, not a string", legalText)
}

// isSet reports whether a decoded JSON value counts as present: false, 0
// and null do not.
func isSet(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	default:
		return true
	}
}

func (n *Normalizer) fromUpload(ctx context.Context, r *http.Request) (string, error) {
	upload, err := readUpload(r)
	if err != nil {
		return "", err
	}

	ext := upload.Ext()
	extractor, ok := n.Extractors[ext]
	if !ok {
		slog.DebugContext(ctx, "rejecting upload", "file", upload.FileName, "ext", ext)
		return "", ErrUnsupportedFileType
	}

	slog.DebugContext(ctx, "extracting upload", "file", upload.FileName, "bytes", len(upload.Data))
	text, err := extractor.ExtractText(upload.Data)
	if err != nil {
		return "", fmt.Errorf("extract %s text: %w", ext, err)
	}
	return text, nil
}

// readUpload streams the multipart body and keeps the first file part.
// Other parts are drained so the whole body is consumed.
func readUpload(r *http.Request) (Upload, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return Upload{}, fmt.Errorf("open multipart body: %w", err)
	}

	var (
		upload Upload
		found  bool
	)
	for {
		part, err := mr.NextPart()
		// a clean end is a bare io.EOF; a truncated body wraps it
		if err == io.EOF {
			break
		}
		if err != nil {
			return Upload{}, fmt.Errorf("read multipart body: %w", err)
		}

		if found || part.FileName() == "" {
			_, err = io.Copy(io.Discard, part)
		} else {
			upload.FileName = part.FileName()
			upload.Data, err = io.ReadAll(part)
			found = true
		}
		part.Close()
		if err != nil {
			return Upload{}, fmt.Errorf("read multipart part: %w", err)
		}
	}
	if !found {
		// nothing to dispatch on; same outcome as an unknown extension
		return Upload{}, ErrUnsupportedFileType
	}
	return upload, nil
}
