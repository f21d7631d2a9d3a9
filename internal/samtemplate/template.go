// SPDX-License-Identifier: MPL-2.0

package samtemplate

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// FunctionType is the resource type of a SAM serverless function.
const FunctionType = "AWS::Serverless::Function"

// ErrNoResources is returned when a template has no Resources mapping.
var ErrNoResources = errors.New("template has no Resources section")

type (
	// Function is one AWS::Serverless::Function resource.
	Function struct {
		// LogicalID is the resource key, the name passed to 'sam local invoke'.
		LogicalID string
		Handler   string
		Runtime   string
		CodeURI   string
		// EnvKeys lists Environment.Variables names in template order.
		EnvKeys []string
	}

	// Template is the subset of a SAM template devcmd cares about.
	Template struct {
		Path      string
		Functions []Function
	}
)

// Load reads and parses the template at path. A missing file is reported
// with an error wrapping os.ErrNotExist.
func Load(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("samtemplate: read %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("samtemplate: %s: %w", path, err)
	}
	t.Path = path
	return t, nil
}

// Parse extracts the serverless functions from template data.
func Parse(data []byte) (*Template, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode template: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, ErrNoResources
	}

	resources := mappingValue(doc.Content[0], "Resources")
	if resources == nil || resources.Kind != yaml.MappingNode {
		return nil, ErrNoResources
	}

	t := &Template{}
	for i := 0; i+1 < len(resources.Content); i += 2 {
		id, body := resources.Content[i].Value, resources.Content[i+1]
		if scalar(mappingValue(body, "Type")) != FunctionType {
			continue
		}
		t.Functions = append(t.Functions, parseFunction(id, mappingValue(body, "Properties")))
	}
	return t, nil
}

func parseFunction(id string, props *yaml.Node) Function {
	fn := Function{LogicalID: id}
	if props == nil {
		return fn
	}
	fn.Handler = scalar(mappingValue(props, "Handler"))
	fn.Runtime = scalar(mappingValue(props, "Runtime"))
	fn.CodeURI = scalar(mappingValue(props, "CodeUri"))

	vars := mappingValue(mappingValue(props, "Environment"), "Variables")
	if vars != nil && vars.Kind == yaml.MappingNode {
		for i := 0; i < len(vars.Content); i += 2 {
			fn.EnvKeys = append(fn.EnvKeys, vars.Content[i].Value)
		}
	}
	return fn
}

// Function returns the function with the given logical ID.
func (t *Template) Function(id string) (Function, bool) {
	for _, fn := range t.Functions {
		if fn.LogicalID == id {
			return fn, true
		}
	}
	return Function{}, false
}

// FunctionNames returns the logical IDs of all functions, sorted.
func (t *Template) FunctionNames() []string {
	names := make([]string, 0, len(t.Functions))
	for _, fn := range t.Functions {
		names = append(names, fn.LogicalID)
	}
	slices.Sort(names)
	return names
}

// mappingValue returns the value node for key in a mapping node, or nil.
func mappingValue(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

// scalar returns a plain scalar's value. Tagged intrinsics such as !Sub keep
// their literal text.
func scalar(n *yaml.Node) string {
	if n == nil || n.Kind != yaml.ScalarNode {
		return ""
	}
	return n.Value
}
