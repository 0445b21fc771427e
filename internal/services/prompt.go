package services

import (
	"fmt"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildKeywordExtractionPrompt asks for the job description's skills as a
// comma-separated list.
func (pb *PromptBuilder) BuildKeywordExtractionPrompt(jobDescription string) string {
	return fmt.Sprintf(`You are an experienced HR analyst with deep knowledge of software engineering and data engineering hiring.

Read the job description below and extract the technical skills, tools, frameworks, programming languages and qualifications it asks for.

Return ONLY a comma-separated list of concise keywords (one to three words each), ordered by importance.
Do not number the items, do not add explanations, and do not wrap the list in quotes or markdown.

JOB DESCRIPTION:
%s`, jobDescription)
}

// BuildEvaluationPrompt renders the ATS evaluation prompt from the résumé
// text and the keyword list extracted from the job description.
func (pb *PromptBuilder) BuildEvaluationPrompt(resumeText, keywords string) string {
	return pb.buildEvaluationPrompt(resumeText, "KEY SKILLS REQUIRED BY THE JOB DESCRIPTION", keywords)
}

// BuildEvaluationPromptFromJD is the variant without keyword extraction:
// the raw job description is embedded instead.
func (pb *PromptBuilder) BuildEvaluationPromptFromJD(resumeText, jobDescription string) string {
	return pb.buildEvaluationPrompt(resumeText, "JOB DESCRIPTION", jobDescription)
}

func (pb *PromptBuilder) buildEvaluationPrompt(resumeText, jobSectionTitle, jobSection string) string {
	return fmt.Sprintf(`You are a skilled and very experienced ATS (Applicant Tracking System) with a deep understanding of the tech field: software engineering, data science, data analysis, data engineering and big data engineering.

Your task is to evaluate the resume against the job requirements below. The job market is very competitive, so give the best possible assistance for improving the resume.
Assign the percentage match between the resume and the job requirements, list the missing keywords with high accuracy, and write a short profile summary.

Respond with a single JSON object with exactly these three keys:
{"JD Match": "<percentage between 0 and 100 followed by %%>", "MissingKeywords": ["<keyword>", "..."], "Profile Summary": "<summary>"}

Rules:
- Output ONLY the JSON object. No text before or after it.
- Do not use escape sequences such as \n or \t inside values.
- Do not wrap the JSON in markdown or code fences.

RESUME:
%s

%s:
%s`, resumeText, jobSectionTitle, jobSection)
}
