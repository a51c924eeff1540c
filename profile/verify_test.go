package profile

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestVerifyParameters(t *testing.T) {
	tests := map[string]struct {
		variant Variant
		raw     map[string]interface{}
		// Params slices of the expected violations, in check order
		want [][]string
	}{
		"otalab defaults are valid": {
			variant: VariantOTALab,
		},
		"otalab custom ranges in band": {
			variant: VariantOTALab,
			raw: map[string]interface{}{
				"ul_freq_min": 3400.0, "ul_freq_max": 3410.0,
				"dl_freq_min": 3500.0, "dl_freq_max": 3510.0,
			},
		},
		"otalab band edges are allowed": {
			variant: VariantOTALab,
			raw: map[string]interface{}{
				"ul_freq_min": 3358.0, "ul_freq_max": 3359.0,
				"dl_freq_min": 3599.0, "dl_freq_max": 3600.0,
			},
		},
		"uplink below band": {
			variant: VariantOTALab,
			raw: map[string]interface{}{
				"ul_freq_min": 3300.0, "ul_freq_max": 3310.0,
			},
			want: [][]string{{"ul_freq_min", "ul_freq_max"}},
		},
		"downlink above band": {
			variant: VariantOTALab,
			raw: map[string]interface{}{
				"dl_freq_min": 3700.0, "dl_freq_max": 3750.0,
			},
			want: [][]string{{"dl_freq_min", "dl_freq_max"}},
		},
		"uplink separation below one megahertz": {
			variant: VariantOTALab,
			raw: map[string]interface{}{
				"ul_freq_min": 3550.0, "ul_freq_max": 3550.5,
			},
			want: [][]string{{"ul_freq_min", "ul_freq_max"}},
		},
		"inverted range fails separation": {
			variant: VariantOTALab,
			raw: map[string]interface{}{
				"dl_freq_min": 3590.0, "dl_freq_max": 3580.0,
			},
			want: [][]string{{"dl_freq_min", "dl_freq_max"}},
		},
		"uplink violation does not mask downlink violation": {
			variant: VariantOTALab,
			raw: map[string]interface{}{
				"ul_freq_min": 3300.0, "ul_freq_max": 3310.0,
				"dl_freq_min": 3580.0, "dl_freq_max": 3580.2,
			},
			want: [][]string{
				{"ul_freq_min", "ul_freq_max"},
				{"dl_freq_min", "dl_freq_max"},
			},
		},
		"out of band and too narrow reported twice": {
			variant: VariantOTALab,
			raw: map[string]interface{}{
				"ul_freq_min": 3300.0, "ul_freq_max": 3300.5,
			},
			want: [][]string{
				{"ul_freq_min", "ul_freq_max"},
				{"ul_freq_min", "ul_freq_max"},
			},
		},
		"deployment has no band bound": {
			variant: VariantDeployment,
			raw: map[string]interface{}{
				"ul_freq_min": 2500.0, "ul_freq_max": 2510.0,
				"dl_freq_min": 2620.0, "dl_freq_max": 2630.0,
			},
		},
		"deployment still enforces separation": {
			variant: VariantDeployment,
			raw: map[string]interface{}{
				"ul_freq_min": 2500.0, "ul_freq_max": 2500.2,
			},
			want: [][]string{{"ul_freq_min", "ul_freq_max"}},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			params, err := bindParameters(tc.variant.Schema(), tc.raw)
			if err != nil {
				t.Fatalf("bind failed: %v", err)
			}

			verr := verifyParameters(tc.variant, params)
			got := ParamErrors(verr)

			if len(got) != len(tc.want) {
				t.Fatalf("expected %d violations, got %d: %v", len(tc.want), len(got), verr)
			}
			for i, pe := range got {
				if diff := cmp.Diff(tc.want[i], pe.Params); diff != "" {
					t.Errorf("violation %d parameters mismatch (-want +got):\n%s", i, diff)
				}
			}
		})
	}
}

func TestParamErrorsNil(t *testing.T) {
	if got := ParamErrors(nil); got != nil {
		t.Fatalf("expected no violations, got %v", got)
	}
}
