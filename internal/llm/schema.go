package llm

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var compiled sync.Map // schema name -> *jsonschema.Schema

func (s *Schema) compile() (*jsonschema.Schema, error) {
	if v, ok := compiled.Load(s.Name); ok {
		return v.(*jsonschema.Schema), nil
	}
	url := "mem://" + s.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, normalize(s.Definition)); err != nil {
		return nil, err
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, err
	}
	v, _ := compiled.LoadOrStore(s.Name, sch)
	return v.(*jsonschema.Schema), nil
}

// normalize converts Go literals such as []string into the []any and
// float64 values the compiler expects.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalize(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = e
		}
		return out
	case int:
		return float64(t)
	}
	return v
}

// Check validates raw against the schema.
func (s *Schema) Check(raw []byte) error {
	sch, err := s.compile()
	if err != nil {
		return fmt.Errorf("compile schema %s: %w", s.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("reply is not JSON: %w", err)
	}
	return sch.Validate(doc)
}

// finish builds the completion shared by every provider, validating the
// body when the prompt asked for a schema.
func finish(provider string, p Prompt, body []byte, model string, usage Usage, truncated bool) (*Completion, error) {
	if truncated && p.Schema != nil {
		return nil, &Error{Kind: KindTruncated, Provider: provider, Body: body}
	}
	if p.Schema != nil {
		if err := p.Schema.Check(body); err != nil {
			return nil, &Error{Kind: KindInvalidOutput, Provider: provider, Body: body, Err: err}
		}
	}
	return &Completion{JSON: body, Model: model, Usage: usage, Truncated: truncated}, nil
}
