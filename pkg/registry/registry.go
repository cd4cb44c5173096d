// pkg/registry/registry.go
package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed activities.json
var builtinActivities []byte

var (
	builtinOnce sync.Once
	builtin     *ActivityRegistry
	builtinErr  error
)

// LoadRegistry reads a registry file, typically to override the built-in one.
func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(data)
}

// Builtin returns the registry compiled into the binary.
func Builtin() (*ActivityRegistry, error) {
	builtinOnce.Do(func() {
		builtin, builtinErr = parse(builtinActivities)
	})
	return builtin, builtinErr
}

// MustBuiltin is Builtin for callers that cannot continue without the registry.
func MustBuiltin() *ActivityRegistry {
	reg, err := Builtin()
	if err != nil {
		panic(fmt.Sprintf("builtin activity registry: %v", err))
	}
	return reg
}

func parse(data []byte) (*ActivityRegistry, error) {
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse activity registry: %w", err)
	}
	return &reg, nil
}

// Find returns the activity registered for taskType.
func (r *ActivityRegistry) Find(taskType string) (*Activity, bool) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], true
		}
	}
	return nil, false
}

// TaskTypes lists the registered task types in registry order.
func (r *ActivityRegistry) TaskTypes() []string {
	out := make([]string, 0, len(r.Activities))
	for _, a := range r.Activities {
		out = append(out, a.TaskType)
	}
	return out
}

// ValidateInput checks document against the activity's input schema.
// document may be a decoded map or any JSON-serializable struct.
func (a *Activity) ValidateInput(document interface{}) error {
	if len(a.InputSchema) == 0 {
		return nil
	}

	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(a.InputSchema), gojsonschema.NewGoLoader(document))
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("%s input failed validation: %s", a.TaskType, strings.Join(errs, "; "))
	}
	return nil
}
