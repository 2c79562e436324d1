package services

import (
	"fmt"
	"strings"
)

const (
	profileExtractionSystemPrompt = "You are a professional resume parser. Return only valid JSON with no markdown formatting."
	questionSystemPrompt          = "You are an expert technical interviewer. Return only valid JSON."
	followUpSystemPrompt          = "You are an expert technical interviewer. Generate concise, targeted follow-up questions."
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildProfileExtractionPrompt asks for the structured profile of resumeText.
func (pb *PromptBuilder) BuildProfileExtractionPrompt(resumeText string) string {
	return fmt.Sprintf(`Carefully analyze the following resume and extract ALL information accurately.

RESUME TEXT:
%s

Return a JSON object with this structure:
{
  "name": "candidate's full name, taken from the top of the resume",
  "skills": ["skill1", "skill2"],
  "experience": [{"title": "", "company": "", "duration": "", "description": ""}],
  "education": [{"degree": "", "institution": "", "year": "", "grade": ""}],
  "certifications": ["cert1"],
  "projects": [{"name": "", "description": "", "technologies": [""], "link": ""}],
  "achievements": ["achievement1"],
  "languages": ["spoken language1"],
  "publications": [{"title": "", "venue": "", "year": ""}],
  "volunteer": [{"role": "", "organization": "", "duration": ""}],
  "summary": "2-3 sentence professional summary of the candidate's key strengths"
}

Rules:
1. Extract EVERY technical skill: programming languages, frameworks, libraries, tools, databases, cloud platforms, methodologies.
2. Extract every work experience, education entry, certification, project and achievement with full details.
3. "languages" holds ONLY spoken/human languages (English, Hindi, Spanish...). Programming languages belong in "skills".
4. If the resume has no spoken-language section, "languages" is [].
5. Match each project to its deployment URL from the "All Hyperlinks found in resume" section when one fits (vercel.app, netlify.app, github.io...).
6. GitHub, LinkedIn and portfolio links may be listed under "Extracted Links".
7. Any section that does not fit the fields above goes under an extra top-level key named after the section.
8. Missing sections are [] or null.
9. Return ONLY the JSON object.`, resumeText)
}

type QuestionPromptInput struct {
	JobRole         string
	Skills          []string
	ExperienceCount int
	Degree          string
	ProjectCount    int
	Count           int
	ReferenceBank   string
}

// BuildQuestionPrompt asks for exactly in.Count questions, 20% general or
// behavioral and the rest technical.
func (pb *PromptBuilder) BuildQuestionPrompt(in QuestionPromptInput) string {
	skills := "general programming"
	if len(in.Skills) > 0 {
		skills = strings.Join(in.Skills, ", ")
	}

	general := generalQuestionCount(in.Count)
	technical := in.Count - general

	var reference string
	if strings.TrimSpace(in.ReferenceBank) != "" {
		reference = fmt.Sprintf(`
REFERENCE QUESTIONS (for style and depth only, do not copy verbatim):
%s
`, in.ReferenceBank)
	}

	return fmt.Sprintf(`You are conducting an interview for a %s position.

Candidate profile:
- Skills: %s
- Years of Experience: %d
- Education: %s
- Projects: %d project(s)
%s
Generate exactly %d interview questions:
- %d general/behavioral questions (20%%)
- %d technical questions (80%%) based on the candidate's skills and the role

Each question has:
- "question": the question text
- "category": one of general, technical, behavioral
- "difficulty": one of easy, medium, hard
- "skills_tested": list of skills the question probes

Return ONLY a JSON array:
[
  {"question": "Tell me about yourself and your background.", "category": "general", "difficulty": "easy", "skills_tested": ["communication"]},
  {"question": "Explain how you would implement...", "category": "technical", "difficulty": "medium", "skills_tested": ["Go", "system design"]}
]

Make the questions specific to %s and these skills: %s.`,
		in.JobRole, skills, in.ExperienceCount, in.Degree, in.ProjectCount,
		reference,
		in.Count, general, technical,
		in.JobRole, skills)
}

// BuildFollowUpPrompt asks for one question probing deeper into answer.
func (pb *PromptBuilder) BuildFollowUpPrompt(question, answer, jobRole string) string {
	return fmt.Sprintf(`You are interviewing a candidate for a %s position.

Original Question: %s

Candidate's Answer: %s

Write ONE follow-up question that:
1. Digs deeper into their answer
2. Tests practical knowledge or experience
3. Clarifies any vague points
4. Is specific to their response
5. Is relevant to the %s role

Return ONLY the follow-up question text.`, jobRole, question, answer, jobRole)
}

// FormatReferenceContext joins retrieved reference chunks for the question prompt.
func FormatReferenceContext(results []SearchResult) string {
	var b strings.Builder
	for i, r := range results {
		text := strings.TrimSpace(r.Text)
		if text == "" {
			continue
		}
		fmt.Fprintf(&b, "[%d] %s\n", i+1, text)
	}
	return b.String()
}

func generalQuestionCount(count int) int {
	general := (count + 2) / 5
	if general < 1 && count > 1 {
		general = 1
	}
	if general > count {
		general = count
	}
	return general
}
