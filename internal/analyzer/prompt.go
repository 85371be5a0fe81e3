package analyzer

import "fmt"

// NoBenefits is what the model is told to return when a document grants
// the reader nothing.
const NoBenefits = "No Benefits"

const promptTemplate = `
You are a legal assistant AI.
Simplify the following legal text for a non-technical person in simple English.
Respond ONLY with valid JSON (no code fences) with keys:
- summary: a 2-3 sentence overall plain-language summary
- obligations: array of obligations
- risks: array of risks
- benefits: array of benefits (if none then return [%q])

Text: """%s"""
`

// BuildPrompt embeds text verbatim in the analysis instructions.
func BuildPrompt(text string) string {
	return fmt.Sprintf(promptTemplate, NoBenefits, text)
}
