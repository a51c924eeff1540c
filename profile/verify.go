package profile

import (
	"errors"
	"fmt"

	"github.com/powder-labs/srsprofile/types"
)

// CBAND hardware limits of the OTA lab radios, in MHz.
const (
	cbandFreqMin = 3358.0
	cbandFreqMax = 3600.0

	// minimum width of a requested range, in MHz
	minFreqSeparation = 1.0
)

// freqPair names the min/max parameters of one direction.
type freqPair struct {
	direction string
	min, max  string
}

var freqPairs = []freqPair{
	{direction: "uplink", min: paramULFreqMin, max: paramULFreqMax},
	{direction: "downlink", min: paramDLFreqMin, max: paramDLFreqMax},
}

// verifyParameters applies the cross-field frequency constraints the
// schema cannot express. Every pair is checked independently and all
// violations are reported together; a bad uplink range must not mask a
// bad downlink range.
func verifyParameters(v Variant, p *types.BoundParams) error {
	var errs []error

	for _, pair := range freqPairs {
		lo := p.Freq(pair.min)
		hi := p.Freq(pair.max)

		if v == VariantOTALab {
			if lo < cbandFreqMin || lo > cbandFreqMax || hi < cbandFreqMin || hi > cbandFreqMax {
				errs = append(errs, &types.ParamError{
					Msg: fmt.Sprintf("CBAND %s frequencies must be between %g and %g MHz",
						pair.direction, cbandFreqMin, cbandFreqMax),
					Params: []string{pair.min, pair.max},
				})
			}
		}

		if hi-lo < minFreqSeparation {
			errs = append(errs, &types.ParamError{
				Msg: fmt.Sprintf("Minimum and maximum frequencies must be separated by at least %g MHz",
					minFreqSeparation),
				Params: []string{pair.min, pair.max},
			})
		}
	}

	return errors.Join(errs...)
}

// ParamErrors unpacks the individual parameter violations from an error
// returned by BindAndVerify.
func ParamErrors(err error) []*types.ParamError {
	if err == nil {
		return nil
	}

	var out []*types.ParamError

	var walk func(error)
	walk = func(e error) {
		if joined, ok := e.(interface{ Unwrap() []error }); ok {
			for _, sub := range joined.Unwrap() {
				walk(sub)
			}
			return
		}
		var pe *types.ParamError
		if errors.As(e, &pe) {
			out = append(out, pe)
		}
	}
	walk(err)

	return out
}
