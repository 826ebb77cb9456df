package suggest

import (
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/reportassist/internal/ghost"
)

// StudyContext is the metadata sent alongside the report text.
type StudyContext struct {
	PatientSex  string
	PatientAge  int
	StudyHeader string
	StudyInfo   string
}

// Request asks for suggestions on a report.
type Request struct {
	// ID correlates logs and the X-Request-ID header. Not sent in the body.
	ID         string
	ReportText string
	Study      StudyContext
}

// EncodeRequest builds the JSON request body.
func EncodeRequest(r Request) ([]byte, error) {
	body := []byte(`{}`)
	fields := []struct {
		path  string
		value any
	}{
		{"reportText", r.ReportText},
		{"patientSex", r.Study.PatientSex},
		{"patientAge", r.Study.PatientAge},
		{"studyHeader", r.Study.StudyHeader},
		{"studyInfo", r.Study.StudyInfo},
	}
	var err error
	for _, f := range fields {
		if body, err = sjson.SetBytes(body, f.path, f.value); err != nil {
			return nil, err
		}
	}
	return body, nil
}

// DecodeResponse reads {"suggestions":[{"lineNumber":n,"suggestion":"..."}]}.
// Field names match case-insensitively on their first letter, so
// PascalCase bodies are accepted too. Entries without text are skipped.
func DecodeResponse(data []byte) ([]ghost.Suggestion, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrMalformedResponse
	}
	root := gjson.ParseBytes(data)
	list := field(root, "suggestions")

	var out []ghost.Suggestion
	list.ForEach(func(_, v gjson.Result) bool {
		text := field(v, "suggestion")
		if text.Type != gjson.String || strings.TrimSpace(text.Str) == "" {
			return true
		}
		out = append(out, ghost.Suggestion{
			Line: int(field(v, "lineNumber").Int()),
			Text: text.Str,
		})
		return true
	})
	return out, nil
}

// field returns v[name], falling back to the name with its first letter
// upper-cased.
func field(v gjson.Result, name string) gjson.Result {
	if r := v.Get(name); r.Exists() {
		return r
	}
	return v.Get(strings.ToUpper(name[:1]) + name[1:])
}
