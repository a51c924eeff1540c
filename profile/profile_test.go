package profile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndToEndDeployment(t *testing.T) {
	raw := map[string]interface{}{
		"ul_freq_min": 2500.0,
		"ul_freq_max": 2510.0,
		"dl_freq_min": 2620.0,
		"dl_freq_max": 2630.0,
		"x310_radios": []interface{}{
			map[interface{}]interface{}{"radio_name": "cellsdr1-browning"},
		},
		"b210_nodes": []interface{}{
			map[interface{}]interface{}{"aggregate_id": "web"},
		},
	}

	p, err := New(WithVariant("deployment"), WithParams(raw))
	require.NoError(t, err)

	req, err := p.Build()
	require.NoError(t, err)

	// one base-station triple plus one fixed endpoint
	assert.Len(t, req.Nodes, 3)
	assert.Len(t, req.Links, 1)

	require.Len(t, req.Spectrum, 2)
	assert.Equal(t, 2500.0, req.Spectrum[0].FreqLow)
	assert.Equal(t, 2510.0, req.Spectrum[0].FreqHigh)
	assert.Equal(t, 0, req.Spectrum[0].Priority)
	assert.Equal(t, 2620.0, req.Spectrum[1].FreqLow)
	assert.Equal(t, 2630.0, req.Spectrum[1].FreqHigh)

	buf := new(bytes.Buffer)
	require.NoError(t, p.Emit(buf))
	out := buf.String()

	assert.Contains(t, out, `client_id="cellsdr1-browning-comp"`)
	assert.Contains(t, out, `client_id="cellsdr1-browning-x310"`)
	assert.Contains(t, out, `client_id="b210-web-nuc2"`)
	assert.Contains(t, out, `client_id="radio-link-0"`)
}

func TestEndToEndUplinkSeparationFailure(t *testing.T) {
	p, err := New(WithVariant("otalab"), WithParams(map[string]interface{}{
		"ul_freq_min": 3550.0,
		"ul_freq_max": 3550.5,
	}))
	require.NoError(t, err)

	_, err = p.Build()
	require.Error(t, err)
	assert.Nil(t, p.Request, "nothing may be emitted on validation failure")

	perrs := ParamErrors(err)
	require.Len(t, perrs, 1)
	assert.Equal(t, []string{"ul_freq_min", "ul_freq_max"}, perrs[0].Params)
	assert.Contains(t, perrs[0].Msg, "separated by at least 1 MHz")
}

func TestEndToEndDownlinkOutOfBand(t *testing.T) {
	p, err := New(WithVariant("otalab"), WithParams(map[string]interface{}{
		"dl_freq_min": 3700.0,
		"dl_freq_max": 3750.0,
	}))
	require.NoError(t, err)

	_, err = p.Build()
	require.Error(t, err)

	perrs := ParamErrors(err)
	require.Len(t, perrs, 1)
	assert.Equal(t, []string{"dl_freq_min", "dl_freq_max"}, perrs[0].Params)
	assert.Contains(t, perrs[0].Msg, "between 3358 and 3600 MHz")
}

func TestEndToEndNoSelections(t *testing.T) {
	p, err := New(WithVariant("otalab"))
	require.NoError(t, err)

	req, err := p.Build()
	require.NoError(t, err)

	assert.Empty(t, req.Nodes)
	assert.Empty(t, req.Links)
	assert.Len(t, req.Spectrum, 2)

	buf := new(bytes.Buffer)
	require.NoError(t, p.Emit(buf))
	assert.Contains(t, buf.String(), "<spectrum")
	assert.NotContains(t, buf.String(), "<node")
}

func TestParamsFileWithEnvExpansion(t *testing.T) {
	t.Setenv("SRS_GH_TOKEN", "ghp_fromenv")

	paramsYML := `
x310_pair_nodetype: d430
token: ${SRS_GH_TOKEN}
b210_nodes:
  - aggregate_id: madsen
`
	path := filepath.Join(t.TempDir(), "params.yml")
	require.NoError(t, os.WriteFile(path, []byte(paramsYML), 0o644))

	p, err := New(WithVariant("deployment"), WithParamsFile(path))
	require.NoError(t, err)

	req, err := p.Build()
	require.NoError(t, err)

	require.Len(t, req.Nodes, 1)
	execs := req.Nodes[0].Services.Execute
	last := execs[len(execs)-1].Command
	assert.True(t, strings.HasPrefix(last, "/local/repository/bin/setup.sh ghp_fromenv"),
		"setup command should carry the expanded token, got %q", last)
}

func TestParseVariant(t *testing.T) {
	tests := map[string]struct {
		in      string
		want    Variant
		wantErr bool
	}{
		"deployment": {in: "deployment", want: VariantDeployment},
		"otalab":     {in: "otalab", want: VariantOTALab},
		"unknown":    {in: "indoor", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseVariant(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
