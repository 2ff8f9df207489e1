package analysis

import (
	"fmt"
	"strconv"
	"time"
)

// promptTemplate is the fixed instruction sent to the model. User input is
// embedded without escaping; the reply is always treated as untrusted text
// and goes through ParseReply.
const promptTemplate = `Hello! I am your AI health assistant.
Height: %s, Weight: %s, Age: %s, Gender: %s, BMI: %s, Location: %s, Date: %s (month: %d)
Symptoms: %s
Respond ONLY with valid JSON like:
{"possible_diseases": ["Disease1"], "severity": "mild/moderate/severe", "doctor_recommendation": "Specialization", "advice": "Advice text", "bmi": %s}
`

// BuildPrompt renders the model prompt for a validated input.
func BuildPrompt(in *Input, bmi *float64, now time.Time) string {
	return fmt.Sprintf(promptTemplate,
		floatOrNull(in.Height),
		floatOrNull(in.Weight),
		intOrNull(in.Age),
		stringOrNull(in.Gender),
		floatOrNull(bmi),
		stringOrNull(in.Location),
		now.Format("2006-01-02"),
		int(now.Month()),
		in.Symptoms,
		floatOrNull(bmi),
	)
}

func floatOrNull(v *float64) string {
	if v == nil {
		return "null"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func intOrNull(v *int) string {
	if v == nil {
		return "null"
	}
	return strconv.Itoa(*v)
}

func stringOrNull(v string) string {
	if v == "" {
		return "null"
	}
	return v
}
