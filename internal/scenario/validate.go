package scenario

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"

	_ "embed"
)

//go:embed schema.cue
var schemaCUE string

// ValidateFile checks a scenario YAML file against the embedded CUE
// schema. Returns one error per violation; nil means the file is
// schema-valid (Load may still reject it on semantic grounds, e.g. an
// undeclared signer).
func ValidateFile(path string) []error {
	data, err := os.ReadFile(path)
	if err != nil {
		return []error{fmt.Errorf("read scenario: %w", err)}
	}
	return ValidateBytes(path, data)
}

// ValidateBytes checks scenario YAML bytes against the schema. The
// filename parameter is used in error positions only.
func ValidateBytes(filename string, data []byte) []error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return []error{fmt.Errorf("compile schema: %w", err)}
	}
	def := schema.LookupPath(cue.ParsePath("#Scenario"))
	if err := def.Err(); err != nil {
		return []error{fmt.Errorf("lookup #Scenario: %w", err)}
	}

	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return []error{fmt.Errorf("parse yaml: %w", err)}
	}
	val := ctx.BuildFile(file)
	if err := val.Err(); err != nil {
		return []error{fmt.Errorf("build yaml: %w", err)}
	}

	unified := def.Unify(val)
	if err := unified.Validate(cue.Final(), cue.Concrete(true)); err != nil {
		var errs []error
		for _, e := range cueerrors.Errors(err) {
			errs = append(errs, e)
		}
		return errs
	}
	return nil
}
