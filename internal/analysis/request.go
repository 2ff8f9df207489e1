// Package analysis implements the symptom-analysis pipeline: request
// validation, BMI derivation, prompt construction, model invocation with
// fallback, and reply parsing.
package analysis

import (
	"fmt"
	"strconv"
	"strings"
)

var validGenders = map[string]bool{
	"male":   true,
	"female": true,
	"trans":  true,
}

// SymptomRequest is the raw request body. Numeric fields are typed any so
// that both JSON numbers and numeric strings are accepted; Validate
// normalizes them.
type SymptomRequest struct {
	Height    any      `json:"height"`
	Weight    any      `json:"weight"`
	Age       any      `json:"age"`
	Gender    string   `json:"gender"`
	Symptoms  any      `json:"symptoms"`
	Location  string   `json:"location"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Input is a validated, normalized request. Absent optional fields are nil.
type Input struct {
	Height        *float64
	Weight        *float64
	Age           *int
	Gender        string
	Symptoms      string
	SymptomTokens []string
	Location      string
	Latitude      *float64
	Longitude     *float64
}

// ValidationError names the offending field and its constraint. It maps to
// a 400 response.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks every provided field against its declared range and
// returns the normalized input. Absence is permitted for everything except
// symptoms.
func (r *SymptomRequest) Validate() (*Input, *ValidationError) {
	in := &Input{
		Location:  strings.TrimSpace(r.Location),
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
	}

	if r.Gender != "" {
		gender := strings.ToLower(strings.TrimSpace(r.Gender))
		if !validGenders[gender] {
			return nil, &ValidationError{
				Field:   "gender",
				Message: fmt.Sprintf("Invalid gender value: %s. Valid values are: male, female, trans.", r.Gender),
			}
		}
		in.Gender = gender
	}

	if r.Age != nil {
		age, ok := parseInt(r.Age)
		if !ok || age <= 0 || age >= 120 {
			return nil, &ValidationError{
				Field:   "age",
				Message: fmt.Sprintf("Invalid age value: %v. Must be an integer >0 and <120.", r.Age),
			}
		}
		in.Age = &age
	}

	if r.Height != nil {
		height, ok := parseFloat(r.Height)
		if !ok || height <= 30 || height >= 300 {
			return nil, &ValidationError{
				Field:   "height",
				Message: fmt.Sprintf("Invalid height value: %v. Must be >30 and <300 (cm).", r.Height),
			}
		}
		in.Height = &height
	}

	if r.Weight != nil {
		weight, ok := parseFloat(r.Weight)
		if !ok || weight <= 2 || weight >= 600 {
			return nil, &ValidationError{
				Field:   "weight",
				Message: fmt.Sprintf("Invalid weight value: %v. Must be >2 and <600 (kg).", r.Weight),
			}
		}
		in.Weight = &weight
	}

	in.Symptoms, in.SymptomTokens = normalizeSymptoms(r.Symptoms)
	if len(in.SymptomTokens) == 0 {
		return nil, &ValidationError{
			Field:   "symptoms",
			Message: "Please provide your symptoms",
		}
	}

	return in, nil
}

// normalizeSymptoms accepts comma-separated free text or a JSON list and
// returns both the display form and the token list.
func normalizeSymptoms(raw any) (string, []string) {
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v), splitTokens(v)
	case []any:
		tokens := []string{}
		for _, item := range v {
			if s, ok := item.(string); ok {
				if trimmed := strings.TrimSpace(s); trimmed != "" {
					tokens = append(tokens, trimmed)
				}
			}
		}
		return strings.Join(tokens, ", "), tokens
	default:
		return "", nil
	}
}

func splitTokens(text string) []string {
	tokens := []string{}
	for _, part := range strings.Split(text, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tokens = append(tokens, trimmed)
		}
	}
	return tokens
}

func parseFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// parseInt truncates fractional JSON numbers and parses integer strings.
func parseInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	default:
		return 0, false
	}
}
