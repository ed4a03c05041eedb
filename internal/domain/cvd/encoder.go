// Package cvd is the cardiovascular risk engine: categorical encoding,
// measurement tiering, the risk prediction headline and report composition.
// Everything in this package is a pure function of its inputs; the only
// collaborator is the injected Predictor.
package cvd

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Gender as captured on the patient form.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Numeric gender codes shared with the model and the patient table.
const (
	GenderCodeMale   = 1
	GenderCodeFemale = 2
)

// GenderToCode maps "Male" to 1 and everything else to 2. There is no
// unknown state.
func GenderToCode(text string) int {
	if text == string(GenderMale) {
		return GenderCodeMale
	}
	return GenderCodeFemale
}

// CodeToGender maps 1 to "Male" and everything else to "Female".
func CodeToGender(n int) string {
	if n == GenderCodeMale {
		return string(GenderMale)
	}
	return string(GenderFemale)
}

func BoolToCode(flag bool) int {
	if flag {
		return 1
	}
	return 0
}

// CodeToBool treats only 1 as true.
func CodeToBool(n int) bool {
	return n == 1
}

// YesNoToCode converts the "Yes"/"No" select value used by the dashboards.
func YesNoToCode(text string) int {
	if text == "Yes" {
		return 1
	}
	return 0
}

func CodeToYesNo(n int) string {
	if n == 1 {
		return "Yes"
	}
	return "No"
}

// Level is the three-step categorical scale used for cholesterol and glucose.
type Level int

const (
	LevelNormal          Level = 1
	LevelAboveNormal     Level = 2
	LevelWellAboveNormal Level = 3
)

var levelText = map[Level]string{
	LevelNormal:          "Normal",
	LevelAboveNormal:     "Above Normal",
	LevelWellAboveNormal: "Well Above Normal",
}

var levelCodes = map[string]int{
	"Normal":            1,
	"AboveNormal":       2,
	"Above Normal":      2,
	"WellAboveNormal":   3,
	"Well Above Normal": 3,
}

// LevelToCode returns 1, 2 or 3 for the canonical level names and their
// display spellings. Unrecognised text falls back to 1 (Normal).
func LevelToCode(text string) int {
	if code, ok := levelCodes[strings.TrimSpace(text)]; ok {
		return code
	}
	return int(LevelNormal)
}

// CodeToLevel returns the display text for a level code, "Normal" when the
// code is out of range.
func CodeToLevel(n int) string {
	if text, ok := levelText[Level(n)]; ok {
		return text
	}
	return levelText[LevelNormal]
}

// ParseLevel never fails; see LevelToCode.
func ParseLevel(text string) Level {
	return Level(LevelToCode(text))
}

// Normalize folds out-of-range codes onto LevelNormal.
func (l Level) Normalize() Level {
	if _, ok := levelText[l]; ok {
		return l
	}
	return LevelNormal
}

func (l Level) String() string {
	return CodeToLevel(int(l))
}

func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON accepts the level text, its numeric code, or the code
// quoted as a string ("3", 3 and 3.0 all decode to WellAboveNormal).
// Unknown values decode to LevelNormal instead of failing.
func (l *Level) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if code, ok := levelCode(s); ok {
			*l = code
			return nil
		}
		*l = ParseLevel(s)
		return nil
	}
	if code, ok := levelCode(string(data)); ok {
		*l = code
		return nil
	}
	*l = LevelNormal
	return nil
}

// levelCode parses an integral number such as "2" or "2.0" into a level.
func levelCode(text string) (Level, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f < float64(LevelNormal) || f > float64(LevelWellAboveNormal) {
		return LevelNormal, true
	}
	return Level(int(f)), true
}
