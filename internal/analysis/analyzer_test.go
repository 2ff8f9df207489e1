package analysis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhilraj/carepoint-backend/internal/gemini"
)

type fakeClient struct {
	models    []gemini.Model
	listErr   error
	failUntil int // candidates before this index fail
	calls     []string
	reply     string
}

func (c *fakeClient) ListModels(ctx context.Context) ([]gemini.Model, error) {
	return c.models, c.listErr
}

func (c *fakeClient) GenerateContent(ctx context.Context, model string, req *gemini.GenerateContentRequest) (*gemini.GenerateContentResponse, error) {
	c.calls = append(c.calls, model)
	if len(c.calls) <= c.failUntil {
		return nil, fmt.Errorf("model %s unavailable", model)
	}
	return &gemini.GenerateContentResponse{
		Candidates: []gemini.Candidate{
			{Content: gemini.Content{Parts: []gemini.Part{{Text: c.reply}}}},
		},
	}, nil
}

func genModel(name string) gemini.Model {
	return gemini.Model{Name: name, SupportedGenerationMethods: []string{"generateContent"}}
}

func newTestAnalyzer(client ModelClient) *Analyzer {
	a := NewAnalyzer(client, []string{"models/fallback-a", "models/fallback-b", "models/fallback-c"}, time.Second, time.Second)
	a.now = func() time.Time { return time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC) }
	return a
}

func TestRunFirstCandidateSucceeds(t *testing.T) {
	client := &fakeClient{
		models: []gemini.Model{genModel("models/alpha"), genModel("models/beta")},
		reply:  `{"possible_diseases": ["Flu"], "severity": "mild", "doctor_recommendation": "General Physician", "advice": "Rest", "bmi": null}`,
	}
	a := newTestAnalyzer(client)

	result, err := a.Run(context.Background(), &Input{Symptoms: "fever"})
	require.NoError(t, err)
	assert.Equal(t, []string{"models/alpha"}, client.calls)
	assert.Equal(t, "General Physician", result.DoctorRecommendation())
}

func TestRunFallsThroughFailingCandidates(t *testing.T) {
	client := &fakeClient{
		models:    []gemini.Model{genModel("models/alpha"), genModel("models/beta"), genModel("models/gamma")},
		failUntil: 2,
		reply:     `{"severity": "mild"}`,
	}
	a := newTestAnalyzer(client)

	result, err := a.Run(context.Background(), &Input{Symptoms: "fever"})
	require.NoError(t, err)
	assert.Equal(t, []string{"models/alpha", "models/beta", "models/gamma"}, client.calls)
	assert.Equal(t, "mild", result["severity"])
}

func TestRunAllCandidatesFail(t *testing.T) {
	client := &fakeClient{
		models:    []gemini.Model{genModel("models/alpha"), genModel("models/beta")},
		failUntil: 10,
	}
	a := newTestAnalyzer(client)

	_, err := a.Run(context.Background(), &Input{Symptoms: "fever"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all models failed")
	assert.Contains(t, err.Error(), "models/beta unavailable")
}

func TestRunUsesFallbackListWhenDiscoveryFails(t *testing.T) {
	client := &fakeClient{
		listErr: errors.New("listing down"),
		reply:   `{"severity": "mild"}`,
	}
	a := newTestAnalyzer(client)

	_, err := a.Run(context.Background(), &Input{Symptoms: "fever"})
	require.NoError(t, err)
	assert.Equal(t, []string{"models/fallback-a"}, client.calls)
}

func TestRunSkipsModelsWithoutGenerationSupport(t *testing.T) {
	client := &fakeClient{
		models: []gemini.Model{
			{Name: "models/embed-only", SupportedGenerationMethods: []string{"embedContent"}},
			genModel("models/alpha"),
		},
		reply: `{"severity": "mild"}`,
	}
	a := newTestAnalyzer(client)

	_, err := a.Run(context.Background(), &Input{Symptoms: "fever"})
	require.NoError(t, err)
	assert.Equal(t, []string{"models/alpha"}, client.calls)
}

func TestModelsSurfacesDiscoveryError(t *testing.T) {
	client := &fakeClient{listErr: errors.New("listing down")}
	a := newTestAnalyzer(client)

	_, err := a.Models(context.Background())
	require.Error(t, err)
}

func TestModelsFiltersToGenerationCapable(t *testing.T) {
	client := &fakeClient{
		models: []gemini.Model{
			{Name: "models/embed-only", SupportedGenerationMethods: []string{"embedContent"}},
			genModel("models/alpha"),
		},
	}
	a := newTestAnalyzer(client)

	models, err := a.Models(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, "models/alpha", models[0].Name)
}
