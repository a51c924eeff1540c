package types

import (
	"fmt"
	"strings"

	"github.com/powder-labs/srsprofile/errors"
)

// ParameterType is the type of a user-facing profile parameter.
type ParameterType int

const (
	// ParamString is a free-form or enum-constrained string.
	ParamString ParameterType = iota
	// ParamFrequency is a frequency in MHz, rounded to the nearest kHz at
	// bind time.
	ParamFrequency
	// ParamStructList is a user-sized list of struct values whose members
	// are themselves schema-described parameters.
	ParamStructList
)

func (t ParameterType) String() string {
	switch t {
	case ParamString:
		return "string"
	case ParamFrequency:
		return "frequency"
	case ParamStructList:
		return "struct-list"
	}
	return fmt.Sprintf("parameter-type(%d)", int(t))
}

// Option is one allowed value of an enum-constrained parameter, with the
// label shown to the user by the portal.
type Option struct {
	Value string
	Label string
}

// Member describes one field of a struct-list entry.
type Member struct {
	Name        string
	Description string
	Default     string
	Options     []Option
}

// ParameterDef describes a single parameter of a profile: its type, its
// default and, for enum-constrained parameters, its allowed values.
// Definitions are immutable once the schema is assembled.
type ParameterDef struct {
	Name        string
	Description string
	Type        ParameterType
	Default     interface{}
	Options     []Option
	Members     []Member
}

// allows reports whether v is an allowed value of the definition. A
// definition without options allows any value.
func (d *ParameterDef) allows(v string) bool {
	if len(d.Options) == 0 {
		return true
	}
	for _, o := range d.Options {
		if o.Value == v {
			return true
		}
	}
	return false
}

// Schema is the ordered set of parameter definitions making up a profile's
// input surface.
type Schema struct {
	defs   []*ParameterDef
	byName map[string]*ParameterDef
}

func NewSchema() *Schema {
	return &Schema{byName: make(map[string]*ParameterDef)}
}

// Define appends a parameter definition to the schema. Redefining a name
// is a programming error and panics, matching the immutability of the
// schema once assembled.
func (s *Schema) Define(d *ParameterDef) {
	if _, ok := s.byName[d.Name]; ok {
		panic(fmt.Sprintf("parameter %q defined twice", d.Name))
	}
	s.defs = append(s.defs, d)
	s.byName[d.Name] = d
}

// Get returns the definition for name, or nil.
func (s *Schema) Get(name string) *ParameterDef {
	return s.byName[name]
}

// Defs returns the definitions in declaration order.
func (s *Schema) Defs() []*ParameterDef {
	return s.defs
}

// RadioEntry is one user-selected base-station radio.
type RadioEntry struct {
	RadioName string `yaml:"radio_name"`
}

// EndpointEntry is one user-selected fixed-endpoint radio. The general
// deployment profile addresses endpoints by remote aggregate, the OTA lab
// profile by local node id; exactly one of the two fields is set.
type EndpointEntry struct {
	AggregateID string `yaml:"aggregate_id,omitempty"`
	NodeID      string `yaml:"node_id,omitempty"`
}

// BoundParams holds the values of all schema parameters after binding,
// either user-supplied or defaulted. It is read-only after binding.
type BoundParams struct {
	strings   map[string]string
	freqs     map[string]float64
	radios    map[string][]RadioEntry
	endpoints map[string][]EndpointEntry
}

func NewBoundParams() *BoundParams {
	return &BoundParams{
		strings:   make(map[string]string),
		freqs:     make(map[string]float64),
		radios:    make(map[string][]RadioEntry),
		endpoints: make(map[string][]EndpointEntry),
	}
}

func (b *BoundParams) SetString(name, v string)              { b.strings[name] = v }
func (b *BoundParams) SetFreq(name string, v float64)        { b.freqs[name] = v }
func (b *BoundParams) SetRadios(name string, v []RadioEntry) { b.radios[name] = v }
func (b *BoundParams) SetEndpoints(name string, v []EndpointEntry) {
	b.endpoints[name] = v
}

// String returns the bound string value of name.
func (b *BoundParams) String(name string) string {
	return b.strings[name]
}

// Freq returns the bound frequency value of name in MHz.
func (b *BoundParams) Freq(name string) float64 {
	return b.freqs[name]
}

// Radios returns the bound radio selections of name in user order.
func (b *BoundParams) Radios(name string) []RadioEntry {
	return b.radios[name]
}

// Endpoints returns the bound fixed-endpoint selections of name in user
// order.
func (b *BoundParams) Endpoints(name string) []EndpointEntry {
	return b.endpoints[name]
}

// ParamError is a validation failure attributed to one or more named
// parameters, mirroring how the portal reports parameter errors back to
// the user.
type ParamError struct {
	Msg    string
	Params []string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s [%s]", e.Msg, strings.Join(e.Params, ", "))
}

func (e *ParamError) Unwrap() error {
	return errors.ErrIncorrectInput
}
