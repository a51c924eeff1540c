package profile

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/powder-labs/srsprofile/errors"
	"github.com/powder-labs/srsprofile/types"
	"github.com/powder-labs/srsprofile/utils"
)

// Variant selects one of the two profile flavors.
type Variant string

const (
	// VariantDeployment is the general srsLTE deployment profile using
	// rooftop base stations and remote fixed-endpoint aggregates.
	VariantDeployment Variant = "deployment"
	// VariantOTALab is the over-the-air lab profile using the indoor
	// ota-x310/ota-nuc devices and CBAND spectrum.
	VariantOTALab Variant = "otalab"
)

// ParseVariant parses a user-supplied variant name.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantDeployment, VariantOTALab:
		return Variant(s), nil
	}
	return "", fmt.Errorf("%w: unknown profile variant %q", errors.ErrIncorrectInput, s)
}

// Profile assembles a resource request for one profile variant. The flow
// is strictly linear: bind parameters, verify them, run the pairing
// builders, attach spectrum, emit. Nothing is emitted if any step fails.
type Profile struct {
	Variant Variant
	Schema  *types.Schema
	Params  *types.BoundParams
	Request *types.Request

	// correlation id for log lines of this invocation
	id string

	rawParams map[string]interface{}
}

// Option is a functional option for New.
type Option func(p *Profile) error

// WithVariant selects the profile variant.
func WithVariant(name string) Option {
	return func(p *Profile) error {
		v, err := ParseVariant(name)
		if err != nil {
			return err
		}
		p.Variant = v
		return nil
	}
}

// WithParamsFile loads raw parameters from a YAML file. Environment
// variable references in the file are expanded before parsing, so
// credentials can be supplied via the environment.
func WithParamsFile(path string) Option {
	return func(p *Profile) error {
		if path == "" {
			return nil
		}

		path, err := utils.ExpandPath(path)
		if err != nil {
			return err
		}

		b, err := utils.ReadFileWithEnv(path)
		if err != nil {
			return err
		}

		raw := map[string]interface{}{}
		if err := yaml.Unmarshal(b, &raw); err != nil {
			return fmt.Errorf("failed to parse parameter file %s: %w", path, err)
		}

		for k, v := range raw {
			p.rawParams[k] = v
		}
		return nil
	}
}

// WithParams merges raw parameter values, overriding any values loaded
// from a file.
func WithParams(raw map[string]interface{}) Option {
	return func(p *Profile) error {
		for k, v := range raw {
			p.rawParams[k] = v
		}
		return nil
	}
}

// WithEnvFile loads a dotenv file into the process environment before any
// parameter file is read. Pass optional=true to silently skip a missing
// file.
func WithEnvFile(path string, optional bool) Option {
	return func(p *Profile) error {
		return utils.LoadEnvFile(path, optional)
	}
}

// New creates a profile. Options are applied in order, so WithEnvFile
// must precede WithParamsFile for the env expansion to see its values.
func New(opts ...Option) (*Profile, error) {
	p := &Profile{
		Variant:   VariantDeployment,
		id:        uuid.New().String(),
		rawParams: make(map[string]interface{}),
	}

	for _, o := range opts {
		if err := o(p); err != nil {
			return nil, err
		}
	}

	p.Schema = p.Variant.Schema()

	return p, nil
}

// BindAndVerify binds the raw parameters against the schema and applies
// the cross-field frequency checks. All violations found are returned
// together; on any violation the profile emits nothing.
func (p *Profile) BindAndVerify() error {
	log.Debugf("binding parameters for %s profile (request %s)", p.Variant, p.id)

	bound, err := bindParameters(p.Schema, p.rawParams)
	if err != nil {
		return err
	}
	p.Params = bound

	return verifyParameters(p.Variant, p.Params)
}

// Build constructs the request tree from the bound parameters. Given the
// same parameter values the result is byte-for-byte identical across
// runs.
func (p *Profile) Build() (*types.Request, error) {
	if p.Params == nil {
		if err := p.BindAndVerify(); err != nil {
			return nil, err
		}
	}

	req := types.NewRequest()

	for i, radio := range p.Params.Radios(paramX310Radios) {
		if err := p.x310NodePair(req, i, radio); err != nil {
			return nil, err
		}
	}

	for i, ep := range p.Params.Endpoints(paramB210Nodes) {
		if err := p.b210NucPair(req, i, ep); err != nil {
			return nil, err
		}
	}

	req.AddSpectrum(p.Params.Freq(paramULFreqMin), p.Params.Freq(paramULFreqMax), 0)
	req.AddSpectrum(p.Params.Freq(paramDLFreqMin), p.Params.Freq(paramDLFreqMax), 0)

	p.Request = req

	log.Infof("request %s: %d nodes, %d links, %d spectrum reservations",
		p.id, len(req.Nodes), len(req.Links), len(req.Spectrum))

	return req, nil
}

// Emit serializes the built request to w. Serialization failure is fatal
// for the invocation; the backend never sees a partial request.
func (p *Profile) Emit(w io.Writer) error {
	if p.Request == nil {
		if _, err := p.Build(); err != nil {
			return err
		}
	}
	return p.Request.WriteXML(w)
}
