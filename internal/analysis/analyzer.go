package analysis

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/nikhilraj/carepoint-backend/internal/gemini"
)

// ModelClient is the slice of the Gemini client the pipeline needs.
type ModelClient interface {
	ListModels(ctx context.Context) ([]gemini.Model, error)
	GenerateContent(ctx context.Context, model string, req *gemini.GenerateContentRequest) (*gemini.GenerateContentResponse, error)
}

// Analyzer runs the validated pipeline: BMI, prompt, model invocation with
// linear fallback, reply parsing.
type Analyzer struct {
	client         ModelClient
	fallbackModels []string
	listTimeout    time.Duration
	genTimeout     time.Duration
	now            func() time.Time
}

func NewAnalyzer(client ModelClient, fallbackModels []string, listTimeout, genTimeout time.Duration) *Analyzer {
	return &Analyzer{
		client:         client,
		fallbackModels: fallbackModels,
		listTimeout:    listTimeout,
		genTimeout:     genTimeout,
		now:            time.Now,
	}
}

// Run executes the pipeline for a validated input. The returned error is
// non-nil only when every candidate model failed.
func (a *Analyzer) Run(ctx context.Context, in *Input) (Result, error) {
	bmi := ComputeBMI(in.Height, in.Weight)
	prompt := BuildPrompt(in, bmi, a.now())

	text, err := a.invoke(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return ParseReply(text, bmi), nil
}

// invoke tries each candidate model once, in order, and stops at the first
// usable reply. Only exhaustion of the whole list is fatal.
func (a *Analyzer) invoke(ctx context.Context, prompt string) (string, error) {
	req := &gemini.GenerateContentRequest{
		Contents: []gemini.Content{
			{Parts: []gemini.Part{{Text: prompt}}},
		},
	}

	var lastErr error
	for _, model := range a.resolveModels(ctx) {
		genCtx, cancel := context.WithTimeout(ctx, a.genTimeout)
		resp, err := a.client.GenerateContent(genCtx, model, req)
		cancel()
		if err != nil {
			lastErr = err
			log.Printf("model %s failed: %v", model, err)
			continue
		}
		return resp.Text(), nil
	}

	return "", fmt.Errorf("all models failed, last error: %v", lastErr)
}

// resolveModels prefers live discovery filtered to generation-capable
// models and substitutes the configured static list when discovery fails or
// comes back empty.
func (a *Analyzer) resolveModels(ctx context.Context) []string {
	listCtx, cancel := context.WithTimeout(ctx, a.listTimeout)
	defer cancel()

	models, err := a.client.ListModels(listCtx)
	if err != nil {
		log.Printf("model discovery failed, using fallback list: %v", err)
		return a.fallbackModels
	}

	candidates := []string{}
	for _, m := range models {
		if m.SupportsGeneration() {
			candidates = append(candidates, m.Name)
		}
	}
	if len(candidates) == 0 {
		return a.fallbackModels
	}
	return candidates
}

// Models lists the generation-capable models for the helper endpoint. No
// fallback here: discovery failure surfaces to the caller.
func (a *Analyzer) Models(ctx context.Context) ([]gemini.Model, error) {
	listCtx, cancel := context.WithTimeout(ctx, a.listTimeout)
	defer cancel()

	models, err := a.client.ListModels(listCtx)
	if err != nil {
		return nil, err
	}

	out := []gemini.Model{}
	for _, m := range models {
		if m.SupportsGeneration() {
			out = append(out, m)
		}
	}
	return out, nil
}
