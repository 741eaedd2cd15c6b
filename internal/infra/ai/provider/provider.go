package provider

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bryanwahyu/labinterpreter/internal/domain/ai"
	"github.com/bryanwahyu/labinterpreter/internal/infra/ai/anthropic"
	"github.com/bryanwahyu/labinterpreter/internal/infra/ai/gemini"
	"github.com/bryanwahyu/labinterpreter/internal/infra/ai/openai"
)

type factory struct {
	model string
	build func(ai.Config) ai.Client
}

var registry = map[string]factory{
	gemini.Vendor:    {gemini.DefaultModel, func(c ai.Config) ai.Client { return gemini.NewClient(c) }},
	openai.Vendor:    {openai.DefaultModel, func(c ai.Config) ai.Client { return openai.NewClient(c) }},
	anthropic.Vendor: {anthropic.DefaultModel, func(c ai.Config) ai.Client { return anthropic.NewClient(c) }},
}

// New picks the vendor adapter named in configuration. The model falls back to
// the vendor default when cfg.Model is empty.
func New(vendor string, cfg ai.Config) (ai.Client, error) {
	f, ok := registry[strings.ToLower(strings.TrimSpace(vendor))]
	if !ok {
		return nil, fmt.Errorf("unknown ai vendor %q (supported: %s)", vendor, strings.Join(Vendors(), ", "))
	}
	if cfg.Model == "" {
		cfg.Model = f.model
	}
	return f.build(cfg), nil
}

// DefaultModel returns the model used when none is configured.
func DefaultModel(vendor string) string {
	return registry[strings.ToLower(strings.TrimSpace(vendor))].model
}

// Vendors lists supported vendor names.
func Vendors() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
