package suggest

import (
	"errors"
	"testing"

	"github.com/tidwall/gjson"
)

func TestEncodeRequest(t *testing.T) {
	body, err := EncodeRequest(Request{
		ID:         "ignored",
		ReportText: "line \"one\"\nline two",
		Study:      StudyContext{PatientSex: "F", PatientAge: 54, StudyHeader: "CT HEAD", StudyInfo: "trauma"},
	})
	if err != nil {
		t.Fatalf("EncodeRequest() error: %v", err)
	}
	res := gjson.ParseBytes(body)
	if res.Get("reportText").String() != "line \"one\"\nline two" {
		t.Errorf("reportText = %q", res.Get("reportText").String())
	}
	if res.Get("patientAge").Int() != 54 || res.Get("patientSex").String() != "F" {
		t.Errorf("body = %s", body)
	}
	if res.Get("studyHeader").String() != "CT HEAD" || res.Get("studyInfo").String() != "trauma" {
		t.Errorf("body = %s", body)
	}
	if res.Get("id").Exists() || res.Get("ID").Exists() {
		t.Error("request ID must not be sent in the body")
	}
}

func TestDecodeResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"camel", `{"suggestions":[{"lineNumber":1,"suggestion":"a b c"},{"lineNumber":2,"suggestion":""}]}`, 1},
		{"pascal", `{"Suggestions":[{"LineNumber":3,"Suggestion":"x y z"}]}`, 1},
		{"missing list", `{"other":true}`, 0},
		{"non-string text", `{"suggestions":[{"lineNumber":1,"suggestion":5}]}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeResponse([]byte(tt.body))
			if err != nil {
				t.Fatalf("DecodeResponse() error: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %v, want %d items", got, tt.want)
			}
		})
	}

	got, _ := DecodeResponse([]byte(`{"Suggestions":[{"LineNumber":3,"Suggestion":"x y z"}]}`))
	if got[0].Line != 3 || got[0].Text != "x y z" {
		t.Errorf("pascal item = %+v", got[0])
	}

	if _, err := DecodeResponse([]byte(`{"suggestions":[`)); !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("malformed err = %v", err)
	}
}
