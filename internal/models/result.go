package models

// AnalysisRequest is the per-request pipeline input. ResumeText is set
// instead of ResumePDF when the caller sends pre-extracted text.
type AnalysisRequest struct {
	ResumePDF      []byte
	ResumeFilename string
	ResumeText     string
	JobDescription string
}

// HasExtractedText reports whether the PDF extraction step can be skipped.
func (r *AnalysisRequest) HasExtractedText() bool {
	return len(r.ResumePDF) == 0
}

// AnalysisResult is the verdict relayed to the caller. The JSON keys are
// the ones the model is instructed to emit.
type AnalysisResult struct {
	JDMatch         string   `json:"JD Match"`
	MissingKeywords []string `json:"MissingKeywords"`
	ProfileSummary  string   `json:"Profile Summary"`
}

// AnalyzeJSONRequest is the body accepted when INPUT_MODE=json.
type AnalyzeJSONRequest struct {
	Resume         string `json:"resume" validate:"required"`
	JobDescription string `json:"job_description" validate:"required"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
