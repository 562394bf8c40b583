package ai

import (
	"strings"
	"text/template"
)

// SystemInstruction is sent with every completion.
const SystemInstruction = `You are an expert career coach and professional writer. You help job seekers write specific, honest, ATS-friendly resumes and cover letters. Never invent employers, degrees or numbers that the candidate did not provide.`

// Temperature is shared by every generator; output varies between calls.
const Temperature float32 = 0.7

const (
	CoverLetterMaxTokens = 1200
	ParagraphMaxTokens   = 400
	SectionMaxTokens     = 600
	FeedbackMaxTokens    = 800
)

var coverLetterTmpl = template.Must(template.New("cover_letter").Funcs(template.FuncMap{"join": strings.Join}).Parse(`Write a cover letter for {{.Personal.FullName}} applying for the {{.Job.JobTitle}} position at {{.Job.CompanyName}}.
{{if .Job.HiringManager}}Address it to {{.Job.HiringManager}}.
{{end}}{{if .Job.JobDescription}}
Job description:
{{.Job.JobDescription}}
{{end}}
Candidate:
{{- if .Personal.Summary}}
Summary: {{.Personal.Summary}}{{end}}
{{- if .Personal.Skills}}
Skills: {{join .Personal.Skills ", "}}{{end}}
{{- if .Personal.Experience}}
Experience: {{.Personal.Experience}}{{end}}
{{- if .Personal.Location}}
Location: {{.Personal.Location}}{{end}}

Return ONLY a JSON object with exactly these string keys and no markdown:
{"introduction": "...", "bodyParagraph1": "...", "bodyParagraph2": "...", "closing": "..."}
The introduction states the role and a hook, bodyParagraph1 covers relevant experience and skills, bodyParagraph2 covers motivation and fit with the company, the closing thanks the reader and asks for an interview.`))

var paragraphTmpls = map[ParagraphType]*template.Template{
	ParagraphIntroduction: template.Must(template.New("introduction").Parse(
		`Rewrite the opening paragraph of a cover letter{{if .Job.JobTitle}} for the {{.Job.JobTitle}} role{{end}}{{if .Job.CompanyName}} at {{.Job.CompanyName}}{{end}}. Make it confident and specific, state the role, and give one compelling reason the candidate fits.`)),
	ParagraphBody1: template.Must(template.New("bodyParagraph1").Parse(
		`Rewrite this cover letter paragraph about the candidate's experience{{if .Job.JobTitle}} for a {{.Job.JobTitle}} role{{end}}. Emphasise concrete achievements and the skills that matter most for the job.`)),
	ParagraphBody2: template.Must(template.New("bodyParagraph2").Parse(
		`Rewrite this cover letter paragraph about why the candidate wants to join{{if .Job.CompanyName}} {{.Job.CompanyName}}{{else}} the company{{end}}. Connect the candidate's goals to the company's work without flattery.`)),
	ParagraphClosing: template.Must(template.New("closing").Parse(
		`Rewrite the closing paragraph of a cover letter{{if .Personal.FullName}} signed by {{.Personal.FullName}}{{end}}. Thank the reader, restate interest briefly, and invite an interview.`)),
}

var sectionTmpls = map[ResumeSection]*template.Template{
	SectionSummary: template.Must(template.New("summary").Parse(
		`Improve this professional summary{{if .JobTitle}} for a {{.JobTitle}}{{end}}{{if .Industry}} in {{.Industry}}{{end}}. Keep it to 3-4 sentences, lead with years of experience and core strengths.`)),
	SectionExperience: template.Must(template.New("experience").Parse(
		`Improve this work experience entry{{if .JobTitle}} targeting {{.JobTitle}} roles{{end}}. Use strong action verbs, one achievement per bullet, and quantify results only where the text already gives numbers.`)),
	SectionSkills: template.Must(template.New("skills").Parse(
		`Organise and improve this skills list{{if .JobTitle}} for a {{.JobTitle}}{{end}}{{if .Industry}} in {{.Industry}}{{end}}. Group related skills and drop duplicates. Do not add skills that are not implied by the text.`)),
	SectionEducation: template.Must(template.New("education").Parse(
		`Improve the wording of this education section. Keep institutions, degrees and dates exactly as given; tighten descriptions and highlight relevant coursework or honours.`)),
	SectionProjects: template.Must(template.New("projects").Parse(
		`Improve these project descriptions{{if .JobTitle}} for a {{.JobTitle}} candidate{{end}}. State the problem, the candidate's contribution, the technologies used and the outcome.`)),
}

var feedbackTmpl = template.Must(template.New("feedback").Parse(`Review this resume{{if .TargetRole}} for a {{.TargetRole}} role{{end}} and give actionable feedback.

Resume (JSON):
{{.ResumeJSON}}

Return ONLY a JSON object with no markdown:
{"score": <0-100>, "summary": "...", "strengths": ["..."], "improvements": ["..."]}`))

type coverLetterData struct {
	Personal PersonalInfo
	Job      JobInfo
}

func CoverLetterPrompt(p PersonalInfo, j JobInfo) (string, error) {
	return render(coverLetterTmpl, coverLetterData{Personal: p, Job: j})
}

// ParagraphPrompt returns the instruction for the paragraph type followed by the current text.
func ParagraphPrompt(t ParagraphType, current string, p PersonalInfo, j JobInfo) (string, error) {
	tmpl, ok := paragraphTmpls[t]
	if !ok {
		return "", errUnknownSelector(string(t))
	}
	head, err := render(tmpl, coverLetterData{Personal: p, Job: j})
	if err != nil {
		return "", err
	}
	return head + "\n\nCurrent paragraph:\n" + current + "\n\nReturn only the rewritten paragraph as plain text.", nil
}

type SectionContext struct {
	JobTitle string `json:"jobTitle,omitempty"`
	Industry string `json:"industry,omitempty"`
}

func SectionPrompt(s ResumeSection, content string, ctx SectionContext) (string, error) {
	tmpl, ok := sectionTmpls[s]
	if !ok {
		return "", errUnknownSelector(string(s))
	}
	head, err := render(tmpl, ctx)
	if err != nil {
		return "", err
	}
	return head + "\n\nCurrent content:\n" + content + "\n\nReturn only the improved content as plain text.", nil
}

func FeedbackPrompt(resumeJSON, targetRole string) (string, error) {
	return render(feedbackTmpl, struct {
		ResumeJSON string
		TargetRole string
	}{resumeJSON, targetRole})
}

func render(t *template.Template, data any) (string, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
