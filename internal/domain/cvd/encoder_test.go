package cvd

import (
	"encoding/json"
	"testing"
)

func TestGenderRoundTrip(t *testing.T) {
	for _, g := range []string{"Male", "Female"} {
		if got := CodeToGender(GenderToCode(g)); got != g {
			t.Errorf("round trip %q: got %q", g, got)
		}
	}
	if GenderToCode("Male") != 1 {
		t.Error("expected Male -> 1")
	}
	if GenderToCode("Female") != 2 {
		t.Error("expected Female -> 2")
	}
}

func TestGenderToCode_UnknownDefaultsToFemale(t *testing.T) {
	for _, g := range []string{"", "male", "Other", "M"} {
		if got := GenderToCode(g); got != 2 {
			t.Errorf("GenderToCode(%q) = %d, want 2", g, got)
		}
	}
	if got := CodeToGender(7); got != "Female" {
		t.Errorf("CodeToGender(7) = %q, want Female", got)
	}
}

func TestBoolCodes(t *testing.T) {
	if BoolToCode(true) != 1 || BoolToCode(false) != 0 {
		t.Error("unexpected bool encoding")
	}
	if !CodeToBool(1) || CodeToBool(0) || CodeToBool(2) {
		t.Error("only 1 decodes to true")
	}
	if YesNoToCode("Yes") != 1 || YesNoToCode("No") != 0 || YesNoToCode("yes") != 0 {
		t.Error("unexpected yes/no encoding")
	}
	if CodeToYesNo(1) != "Yes" || CodeToYesNo(0) != "No" {
		t.Error("unexpected yes/no decoding")
	}
}

func TestLevelRoundTrip(t *testing.T) {
	tests := []struct {
		text string
		code int
	}{
		{"Normal", 1},
		{"Above Normal", 2},
		{"Well Above Normal", 3},
	}
	for _, tt := range tests {
		if got := LevelToCode(tt.text); got != tt.code {
			t.Errorf("LevelToCode(%q) = %d, want %d", tt.text, got, tt.code)
		}
		if got := CodeToLevel(tt.code); got != tt.text {
			t.Errorf("CodeToLevel(%d) = %q, want %q", tt.code, got, tt.text)
		}
	}
}

func TestLevelToCode_AcceptsIdentifiers(t *testing.T) {
	if LevelToCode("AboveNormal") != 2 || LevelToCode("WellAboveNormal") != 3 {
		t.Error("expected identifier spellings to be accepted")
	}
}

func TestLevel_Defaults(t *testing.T) {
	if got := LevelToCode("very high"); got != 1 {
		t.Errorf("unknown text should default to 1, got %d", got)
	}
	for _, n := range []int{0, 4, -1} {
		if got := CodeToLevel(n); got != "Normal" {
			t.Errorf("CodeToLevel(%d) = %q, want Normal", n, got)
		}
	}
}

func TestLevel_JSON(t *testing.T) {
	var p struct {
		A Level `json:"a"`
		B Level `json:"b"`
		C Level `json:"c"`
		D Level `json:"d"`
	}
	if err := json.Unmarshal([]byte(`{"a":"Above Normal","b":3,"c":"bogus","d":9}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.A != LevelAboveNormal || p.B != LevelWellAboveNormal || p.C != LevelNormal || p.D != LevelNormal {
		t.Errorf("unexpected levels: %+v", p)
	}

	var q struct {
		Quoted   Level `json:"quoted"`
		Float    Level `json:"float"`
		Spaced   Level `json:"spaced"`
		Fraction Level `json:"fraction"`
		Huge     Level `json:"huge"`
	}
	if err := json.Unmarshal([]byte(`{"quoted":"3","float":2.0,"spaced":" 2 ","fraction":2.5,"huge":1e300}`), &q); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if q.Quoted != LevelWellAboveNormal || q.Float != LevelAboveNormal || q.Spaced != LevelAboveNormal {
		t.Errorf("numeric codes not decoded: %+v", q)
	}
	if q.Fraction != LevelNormal || q.Huge != LevelNormal {
		t.Errorf("non-codes should fall back to Normal: %+v", q)
	}

	data, err := json.Marshal(LevelWellAboveNormal)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"Well Above Normal"` {
		t.Errorf("unexpected JSON %s", data)
	}
}
