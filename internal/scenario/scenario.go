package scenario

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/notary/internal/canon"
)

// Step operation names.
const (
	StepCreate = "create"
	StepRead   = "read"
	StepUpdate = "update"
	StepDelete = "delete"
	StepAudit  = "audit"
)

// Scenario is a scripted sequence of CRUD operations executed against
// record stores that share one ledger registry. One store is built per
// declared signer, all driven by a deterministic clock, so the same
// scenario always produces the same trace.
type Scenario struct {
	// Name uniquely identifies the scenario; it doubles as the golden
	// file name.
	Name string `yaml:"name"`

	// Description explains what the scenario demonstrates.
	Description string `yaml:"description,omitempty"`

	// Signers lists the acting principals. Each gets its own store on
	// the shared registry.
	Signers []string `yaml:"signers"`

	// Clock configures the deterministic clock. A frozen clock returns
	// the same timestamp for every operation, which is how scenarios
	// script duplicate-operation rejections.
	Clock ClockSpec `yaml:"clock,omitempty"`

	// Steps is the ordered operation script.
	Steps []Step `yaml:"steps"`
}

// ClockSpec configures the scenario clock.
type ClockSpec struct {
	// Start is the first timestamp. Zero defaults to 1.
	Start int64 `yaml:"start,omitempty"`

	// Frozen pins every operation to Start instead of ticking.
	Frozen bool `yaml:"frozen,omitempty"`
}

// Step is one scripted operation.
type Step struct {
	// Signer names the acting store; must be declared in
	// Scenario.Signers.
	Signer string `yaml:"signer"`

	// Op is one of create, read, update, delete, audit.
	Op string `yaml:"op"`

	// Record is the target record id. Required for everything except
	// audit.
	Record string `yaml:"record,omitempty"`

	// Payload carries the record fields for create/update. Scalar
	// string/int/bool values only.
	Payload map[string]any `yaml:"payload,omitempty"`

	// Expect optionally validates the step outcome. A step without an
	// Expect clause is recorded in the trace but not asserted on.
	Expect *Expect `yaml:"expect,omitempty"`

	// payload is Payload converted at load time.
	payload canon.Object
}

// Expect validates a step outcome. All fields are subset checks: only
// what is specified is compared.
type Expect struct {
	// OK asserts whether the operation succeeded.
	OK *bool `yaml:"ok,omitempty"`

	// Error asserts the failure code (DUPLICATE_OPERATION, NOT_FOUND).
	Error string `yaml:"error,omitempty"`

	// Payload asserts fields of a read result. Subset match.
	Payload map[string]any `yaml:"payload,omitempty"`

	// payload is Payload converted at load time.
	payload canon.Object
}

// Load reads and decodes a scenario file, then checks it for semantic
// problems the schema cannot see: undeclared signers, missing record
// ids, non-scalar payload values.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(path, data)
}

// Parse decodes scenario bytes. The name parameter is used in error
// messages only.
func Parse(name string, data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("%s: decode scenario: %w", name, err)
	}
	if err := sc.check(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &sc, nil
}

func (sc *Scenario) check() error {
	if sc.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if len(sc.Signers) == 0 {
		return fmt.Errorf("at least one signer is required")
	}
	declared := make(map[string]bool, len(sc.Signers))
	for _, s := range sc.Signers {
		if s == "" {
			return fmt.Errorf("signer names must be non-empty")
		}
		if declared[s] {
			return fmt.Errorf("duplicate signer %q", s)
		}
		declared[s] = true
	}
	if len(sc.Steps) == 0 {
		return fmt.Errorf("at least one step is required")
	}

	for i := range sc.Steps {
		step := &sc.Steps[i]
		if !declared[step.Signer] {
			return fmt.Errorf("step %d: undeclared signer %q", i+1, step.Signer)
		}
		switch step.Op {
		case StepCreate, StepRead, StepUpdate, StepDelete:
			if step.Record == "" {
				return fmt.Errorf("step %d: %s requires a record id", i+1, step.Op)
			}
		case StepAudit:
		default:
			return fmt.Errorf("step %d: unknown op %q", i+1, step.Op)
		}

		if step.Payload != nil {
			obj, err := canon.ObjectFromAny(step.Payload)
			if err != nil {
				return fmt.Errorf("step %d: payload: %w", i+1, err)
			}
			step.payload = obj
		}
		if step.Expect != nil && step.Expect.Payload != nil {
			obj, err := canon.ObjectFromAny(step.Expect.Payload)
			if err != nil {
				return fmt.Errorf("step %d: expect payload: %w", i+1, err)
			}
			step.Expect.payload = obj
		}
	}
	return nil
}
