package profile

import "github.com/powder-labs/srsprofile/types"

// Parameter names shared by both variants.
const (
	paramNodeType   = "x310_pair_nodetype"
	paramToken      = "token"
	paramUser       = "user"
	paramPassword   = "password"
	paramX310Radios = "x310_radios"
	paramB210Nodes  = "b210_nodes"
	paramULFreqMin  = "ul_freq_min"
	paramULFreqMax  = "ul_freq_max"
	paramDLFreqMin  = "dl_freq_min"
	paramDLFreqMax  = "dl_freq_max"
)

// nodeTypes are the compute node types an X310 can be paired with.
var nodeTypes = []types.Option{
	{Value: "d740", Label: "Emulab, d740"},
	{Value: "d430", Label: "Emulab, d430"},
}

// rooftopRadios are the cellular-band rooftop base-station X310s.
var rooftopRadios = []types.Option{
	{Value: "cellsdr1-browning", Label: "Emulab, cellsdr1-browning (Browning)"},
	{Value: "cellsdr1-bes", Label: "Emulab, cellsdr1-bes (Behavioral)"},
	{Value: "cellsdr1-dentistry", Label: "Emulab, cellsdr1-dentistry (Dentistry)"},
	{Value: "cellsdr1-fm", Label: "Emulab, cellsdr1-fm (Friendship Manor)"},
	{Value: "cellsdr1-honors", Label: "Emulab, cellsdr1-honors (Honors)"},
	{Value: "cellsdr1-meb", Label: "Emulab, cellsdr1-meb (MEB)"},
	{Value: "cellsdr1-smt", Label: "Emulab, cellsdr1-smt (SMT)"},
	{Value: "cellsdr1-hospital", Label: "Emulab, cellsdr1-hospital (Hospital)"},
	{Value: "cellsdr1-ustar", Label: "Emulab, cellsdr1-ustar (USTAR)"},
}

// fixedEndpointAggregates are the remote sites hosting a nuc2/B210 pair.
var fixedEndpointAggregates = []types.Option{
	{Value: "web", Label: "WEB, nuc2"},
	{Value: "bookstore", Label: "Bookstore, nuc2"},
	{Value: "humanities", Label: "Humanities, nuc2"},
	{Value: "law73", Label: "Law 73, nuc2"},
	{Value: "ebc", Label: "EBC, nuc2"},
	{Value: "madsen", Label: "Madsen, nuc2"},
	{Value: "sagepoint", Label: "Sage Point, nuc2"},
	{Value: "moran", Label: "Moran, nuc2"},
	{Value: "cpg", Label: "Central Parking Garage, nuc2"},
	{Value: "guesthouse", Label: "Guest House, nuc2"},
}

// otaLabX310s are the indoor OTA lab base-station radios.
var otaLabX310s = []types.Option{
	{Value: "ota-x310-1", Label: "OTA Lab X310 #1"},
	{Value: "ota-x310-2", Label: "OTA Lab X310 #2"},
	{Value: "ota-x310-3", Label: "OTA Lab X310 #3"},
	{Value: "ota-x310-4", Label: "OTA Lab X310 #4"},
}

// otaLabNUCs are the indoor OTA lab B210/NUC endpoints.
var otaLabNUCs = []types.Option{
	{Value: "ota-nuc1", Label: "OTA Lab B210 #1"},
	{Value: "ota-nuc2", Label: "OTA Lab B210 #2"},
	{Value: "ota-nuc3", Label: "OTA Lab B210 #3"},
	{Value: "ota-nuc4", Label: "OTA Lab B210 #4"},
}

// Schema returns the parameter schema of the variant. The schema is the
// complete input surface: binding rejects anything not declared here.
func (v Variant) Schema() *types.Schema {
	s := types.NewSchema()

	defaultNodeType := nodeTypes[0].Value
	if v == VariantOTALab {
		defaultNodeType = nodeTypes[1].Value
	}

	s.Define(&types.ParameterDef{
		Name:        paramNodeType,
		Description: "Type of compute node paired with the X310 Radios",
		Type:        types.ParamString,
		Default:     defaultNodeType,
		Options:     nodeTypes,
	})

	if v == VariantDeployment {
		s.Define(&types.ParameterDef{
			Name:        paramToken,
			Description: "GitHub Token",
			Type:        types.ParamString,
			Default:     "",
		})
		s.Define(&types.ParameterDef{
			Name:        paramUser,
			Description: "Dockerhub User",
			Type:        types.ParamString,
			Default:     "",
		})
		s.Define(&types.ParameterDef{
			Name:        paramPassword,
			Description: "Dockerhub Password",
			Type:        types.ParamString,
			Default:     "",
		})
	}

	switch v {
	case VariantDeployment:
		s.Define(&types.ParameterDef{
			Name:        paramX310Radios,
			Description: "X310 Radios",
			Type:        types.ParamStructList,
			Members: []types.Member{{
				Name:        "radio_name",
				Description: "Rooftop base-station X310",
				Default:     rooftopRadios[0].Value,
				Options:     rooftopRadios,
			}},
		})
		s.Define(&types.ParameterDef{
			Name:        paramB210Nodes,
			Description: "B210 Radios",
			Type:        types.ParamStructList,
			Members: []types.Member{{
				Name:        "aggregate_id",
				Description: "Fixed Endpoint B210",
				Default:     fixedEndpointAggregates[0].Value,
				Options:     fixedEndpointAggregates,
			}},
		})
	case VariantOTALab:
		s.Define(&types.ParameterDef{
			Name:        paramX310Radios,
			Description: "OTA Lab X310 Radios",
			Type:        types.ParamStructList,
			Members: []types.Member{{
				Name:        "radio_name",
				Description: "OTA Lab X310",
				Default:     otaLabX310s[0].Value,
				Options:     otaLabX310s,
			}},
		})
		s.Define(&types.ParameterDef{
			Name:        paramB210Nodes,
			Description: "OTA Lab B210 Radios",
			Type:        types.ParamStructList,
			Members: []types.Member{{
				Name:        "node_id",
				Description: "OTA Lab B210",
				Default:     otaLabNUCs[0].Value,
				Options:     otaLabNUCs,
			}},
		})
	}

	ulLo, ulHi, dlLo, dlHi := v.freqDefaults()

	s.Define(&types.ParameterDef{
		Name:        paramULFreqMin,
		Description: "Uplink Frequency Min",
		Type:        types.ParamFrequency,
		Default:     ulLo,
	})
	s.Define(&types.ParameterDef{
		Name:        paramULFreqMax,
		Description: "Uplink Frequency Max",
		Type:        types.ParamFrequency,
		Default:     ulHi,
	})
	s.Define(&types.ParameterDef{
		Name:        paramDLFreqMin,
		Description: "Downlink Frequency Min",
		Type:        types.ParamFrequency,
		Default:     dlLo,
	})
	s.Define(&types.ParameterDef{
		Name:        paramDLFreqMax,
		Description: "Downlink Frequency Max",
		Type:        types.ParamFrequency,
		Default:     dlHi,
	})

	return s
}

// freqDefaults returns the default uplink/downlink frequency ranges in
// MHz. The OTA lab defaults sit inside the CBAND range its radios
// support; the deployment defaults are the band-30/7 example ranges.
func (v Variant) freqDefaults() (ulLo, ulHi, dlLo, dlHi float64) {
	if v == VariantOTALab {
		return 3550.0, 3570.0, 3580.0, 3600.0
	}
	return 2500.0, 2510.0, 2620.0, 2630.0
}
