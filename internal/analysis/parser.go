package analysis

import (
	"encoding/json"
	"strings"
)

// Result is the decoded model reply. The shape is whatever the model
// returned; it is not schema-validated, so handlers read fields through the
// accessor methods.
type Result map[string]any

// DoctorRecommendation returns the recommended specialization, or "" when
// the reply did not carry one.
func (r Result) DoctorRecommendation() string {
	rec, _ := r["doctor_recommendation"].(string)
	return strings.TrimSpace(rec)
}

// ParseReply strips markdown code-fence wrapping from the raw model reply
// and decodes it as JSON. On decode failure it returns the degraded wrapper
// {message, bmi} so the pipeline never fails on a malformed reply.
func ParseReply(raw string, bmi *float64) Result {
	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, "```") {
		text = strings.Trim(text, "`")
		if strings.HasPrefix(text, "json") {
			text = strings.TrimSpace(text[4:])
		}
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return Result{"message": text, "bmi": bmiValue(bmi)}
	}
	return Result(decoded)
}

// bmiValue keeps a nil *float64 from serializing as a typed nil.
func bmiValue(bmi *float64) any {
	if bmi == nil {
		return nil
	}
	return *bmi
}
