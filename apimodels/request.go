package apimodels

type AnalysisRequest struct {
	// LegalText is the raw text pasted by the user
	LegalText string `json:"legalText"`
}
