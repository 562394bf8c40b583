package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"github.com/yoockh/careerly/internal/providers/llm"
)

var ErrUnknownSelector = errors.New("unknown template selector")

func errUnknownSelector(s string) error {
	return fmt.Errorf("%w: %q", ErrUnknownSelector, s)
}

const coverLetterSchema = `{
  "type": "object",
  "required": ["introduction", "bodyParagraph1", "bodyParagraph2", "closing"],
  "properties": {
    "introduction":   {"type": "string", "minLength": 1},
    "bodyParagraph1": {"type": "string", "minLength": 1},
    "bodyParagraph2": {"type": "string", "minLength": 1},
    "closing":        {"type": "string", "minLength": 1}
  }
}`

const feedbackSchema = `{
  "type": "object",
  "required": ["score", "summary"],
  "properties": {
    "score":        {"type": "number", "minimum": 0, "maximum": 100},
    "summary":      {"type": "string", "minLength": 1},
    "strengths":    {"type": "array", "items": {"type": "string"}},
    "improvements": {"type": "array", "items": {"type": "string"}}
  }
}`

var (
	coverLetterSchemaLoader = gojsonschema.NewStringLoader(coverLetterSchema)
	feedbackSchemaLoader    = gojsonschema.NewStringLoader(feedbackSchema)
)

// SchemaError lists the fields that failed schema validation.
type SchemaError struct {
	Fields []string
}

func (e *SchemaError) Error() string {
	return "model output does not match schema: " + strings.Join(e.Fields, "; ")
}

func validateAgainst(schema gojsonschema.JSONLoader, doc string) error {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewStringLoader(doc))
	if err != nil {
		return fmt.Errorf("model output is not valid JSON: %w", err)
	}
	if result.Valid() {
		return nil
	}
	se := &SchemaError{}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		se.Fields = append(se.Fields, field+": "+desc.Description())
	}
	return se
}

// ParseCoverLetter is the structured half of cover-letter generation:
// strip fences, check the four-part schema, decode.
func ParseCoverLetter(raw string) (CoverLetter, error) {
	doc := llm.CleanJSONBlock(raw)
	if err := validateAgainst(coverLetterSchemaLoader, doc); err != nil {
		return CoverLetter{}, err
	}
	var cl CoverLetter
	if err := json.Unmarshal([]byte(doc), &cl); err != nil {
		return CoverLetter{}, err
	}
	cl.Introduction = strings.TrimSpace(cl.Introduction)
	cl.BodyParagraph1 = strings.TrimSpace(cl.BodyParagraph1)
	cl.BodyParagraph2 = strings.TrimSpace(cl.BodyParagraph2)
	cl.Closing = strings.TrimSpace(cl.Closing)
	if !cl.Complete() {
		return CoverLetter{}, &SchemaError{Fields: []string{"(root): blank section"}}
	}
	return cl, nil
}

// FallbackCoverLetter builds a complete letter from the inputs alone.
// Same inputs always give the same letter.
func FallbackCoverLetter(p PersonalInfo, j JobInfo) CoverLetter {
	greeting := "Dear Hiring Manager,"
	if hm := strings.TrimSpace(j.HiringManager); hm != "" {
		greeting = "Dear " + hm + ","
	}

	intro := fmt.Sprintf("%s\n\nI am writing to express my interest in the %s position at %s.", greeting, j.JobTitle, j.CompanyName)
	if s := strings.TrimSpace(p.Summary); s != "" {
		intro += " " + ensureSentence(s)
	}

	body1 := "Throughout my career I have focused on delivering reliable, high-quality work and continuously growing my skills."
	if skills := nonBlank(p.Skills...); len(skills) > 0 {
		body1 = fmt.Sprintf("My background includes hands-on experience with %s, which I believe aligns well with the requirements of this role.", humanJoin(skills))
	}
	if e := strings.TrimSpace(p.Experience); e != "" {
		body1 += " " + ensureSentence(e)
	}

	body2 := fmt.Sprintf("I am drawn to %s because of the opportunity to contribute to a team that values impact and craftsmanship. I am confident that my experience and enthusiasm would allow me to make a meaningful contribution as a %s.", j.CompanyName, j.JobTitle)

	closing := fmt.Sprintf("Thank you for considering my application. I would welcome the opportunity to discuss how I can contribute to %s.\n\nSincerely,\n%s", j.CompanyName, p.FullName)
	if contact := strings.TrimSpace(strings.Join(nonBlank(p.Email, p.Phone), " | ")); contact != "" {
		closing += "\n" + contact
	}

	return CoverLetter{
		Introduction:   intro,
		BodyParagraph1: body1,
		BodyParagraph2: body2,
		Closing:        closing,
	}
}

func ParseFeedback(raw string) (ResumeFeedback, error) {
	doc := llm.CleanJSONBlock(raw)
	if err := validateAgainst(feedbackSchemaLoader, doc); err != nil {
		return ResumeFeedback{}, err
	}
	var fb ResumeFeedback
	if err := json.Unmarshal([]byte(doc), &fb); err != nil {
		return ResumeFeedback{}, err
	}
	if fb.Strengths == nil {
		fb.Strengths = []string{}
	}
	if fb.Improvements == nil {
		fb.Improvements = []string{}
	}
	return fb, nil
}

// FallbackFeedback keeps the model's prose when it ignored the JSON format.
func FallbackFeedback(raw string) ResumeFeedback {
	return ResumeFeedback{
		Summary:      strings.TrimSpace(raw),
		Strengths:    []string{},
		Improvements: []string{},
	}
}

func ensureSentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	switch s[len(s)-1] {
	case '.', '!', '?':
		return s
	}
	return s + "."
}

func humanJoin(items []string) string {
	items = nonBlank(items...)
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	}
	return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
}

func nonBlank(vals ...string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
