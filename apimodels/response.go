package apimodels

type AnalysisResult struct {
	// Plain-language summary of the document
	Summary string `json:"summary"`

	// Things the reader is required to do
	Obligations []string `json:"obligations"`

	// Things that could go wrong for the reader
	Risks []string `json:"risks"`

	// Things the reader gains
	Benefits []string `json:"benefits"`
}

// EmptyResult returns a result with every list initialized, so it always
// encodes as arrays rather than null.
func EmptyResult() AnalysisResult {
	return AnalysisResult{
		Summary:     "",
		Obligations: []string{},
		Risks:       []string{},
		Benefits:    []string{},
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}
