package content

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/finfluency/internal/answer"
)

// Answer wraps answer.Expected so it can be decoded from YAML.
//
//	answer: 50                 # scalar
//	answer: [15.4, "15.38"]    # any of
//	answer: {result: Loss}     # per field
type Answer struct {
	answer.Expected
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *Answer) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		v, err := scalarValue(node)
		if err != nil {
			return err
		}
		a.Expected = answer.Scalar(v)

	case yaml.SequenceNode:
		values := make([]answer.Value, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := scalarValue(item)
			if err != nil {
				return err
			}
			values = append(values, v)
		}
		a.Expected = answer.OneOf(values...)

	case yaml.MappingNode:
		fields := make(map[string]answer.Value, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			v, err := scalarValue(node.Content[i+1])
			if err != nil {
				return err
			}
			fields[node.Content[i].Value] = v
		}
		a.Expected = answer.FieldMap(fields)

	default:
		return fmt.Errorf("line %d: unsupported answer form", node.Line)
	}
	return nil
}

func scalarValue(node *yaml.Node) (answer.Value, error) {
	if node.Kind != yaml.ScalarNode {
		return answer.Value{}, fmt.Errorf("line %d: answer values must be scalars", node.Line)
	}
	switch node.Tag {
	case "!!int", "!!float":
		f, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return answer.Value{}, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return answer.Number(f), nil
	default:
		return answer.Text(node.Value), nil
	}
}
