// Package extract turns uploaded document bytes into plain text.
package extract

// Extractor converts one document format to plain text.
type Extractor interface {
	ExtractText(data []byte) (string, error)
}

// ExtractorFunc adapts a plain function to Extractor.
type ExtractorFunc func(data []byte) (string, error)

func (f ExtractorFunc) ExtractText(data []byte) (string, error) {
	return f(data)
}
