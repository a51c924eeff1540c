package profile

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/slices"

	srserrors "github.com/powder-labs/srsprofile/errors"
	"github.com/powder-labs/srsprofile/types"
)

// bindParameters validates the raw user input against the schema and
// produces the bound parameter set, falling back to declared defaults for
// anything the user left out. All violations are collected and returned
// together so the user sees every offending parameter at once.
func bindParameters(s *types.Schema, raw map[string]interface{}) (*types.BoundParams, error) {
	var errs []error

	unknown := make([]string, 0, len(raw))
	for name := range raw {
		if s.Get(name) == nil {
			unknown = append(unknown, name)
		}
	}
	slices.Sort(unknown)
	for _, name := range unknown {
		errs = append(errs, fmt.Errorf("%w: %q", srserrors.ErrUnknownParameter, name))
	}

	bound := types.NewBoundParams()

	for _, def := range s.Defs() {
		v, supplied := raw[def.Name]

		switch def.Type {
		case types.ParamString:
			val, _ := def.Default.(string)
			if supplied {
				sv, ok := v.(string)
				if !ok {
					errs = append(errs, &types.ParamError{
						Msg:    fmt.Sprintf("expected a string, got %T", v),
						Params: []string{def.Name},
					})
					continue
				}
				val = sv
			}
			if !optionAllowed(def.Options, val) {
				errs = append(errs, &types.ParamError{
					Msg:    fmt.Sprintf("%q is not an allowed value", val),
					Params: []string{def.Name},
				})
				continue
			}
			bound.SetString(def.Name, val)

		case types.ParamFrequency:
			val, _ := def.Default.(float64)
			if supplied {
				fv, err := toFloat(v)
				if err != nil {
					errs = append(errs, &types.ParamError{
						Msg:    err.Error(),
						Params: []string{def.Name},
					})
					continue
				}
				val = fv
			}
			// frequencies are rounded to the nearest kHz
			bound.SetFreq(def.Name, math.Round(val*1000)/1000)

		case types.ParamStructList:
			rows, rowErrs := bindStructList(def, v, supplied)
			if len(rowErrs) > 0 {
				errs = append(errs, rowErrs...)
				continue
			}
			setEntries(bound, def, rows)
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return bound, nil
}

// bindStructList validates one struct-list parameter value and returns
// its rows as member-name -> value maps, in user order.
func bindStructList(def *types.ParameterDef, v interface{}, supplied bool) ([]map[string]string, []error) {
	if !supplied {
		return nil, nil
	}

	items, ok := v.([]interface{})
	if !ok {
		return nil, []error{&types.ParamError{
			Msg:    fmt.Sprintf("expected a list of entries, got %T", v),
			Params: []string{def.Name},
		}}
	}

	var errs []error
	rows := make([]map[string]string, 0, len(items))

	for i, item := range items {
		fields, err := toStringMap(item)
		if err != nil {
			errs = append(errs, &types.ParamError{
				Msg:    fmt.Sprintf("entry %d: %v", i, err),
				Params: []string{def.Name},
			})
			continue
		}

		row := make(map[string]string, len(def.Members))
		for _, m := range def.Members {
			val, ok := fields[m.Name]
			if !ok {
				val = m.Default
			}
			if !optionAllowed(m.Options, val) {
				errs = append(errs, &types.ParamError{
					Msg:    fmt.Sprintf("entry %d: %q is not an allowed value of %s", i, val, m.Name),
					Params: []string{def.Name},
				})
				continue
			}
			row[m.Name] = val
			delete(fields, m.Name)
		}

		// leftover keys are not members of this struct list
		leftovers := make([]string, 0, len(fields))
		for k := range fields {
			leftovers = append(leftovers, k)
		}
		slices.Sort(leftovers)
		for _, k := range leftovers {
			errs = append(errs, &types.ParamError{
				Msg:    fmt.Sprintf("entry %d: unknown field %q", i, k),
				Params: []string{def.Name},
			})
		}

		rows = append(rows, row)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return rows, nil
}

// setEntries converts validated struct-list rows into the typed entry
// slices the builders consume. After this point there is no dynamic
// field access.
func setEntries(bound *types.BoundParams, def *types.ParameterDef, rows []map[string]string) {
	switch def.Members[0].Name {
	case "radio_name":
		entries := make([]types.RadioEntry, 0, len(rows))
		for _, row := range rows {
			entries = append(entries, types.RadioEntry{RadioName: row["radio_name"]})
		}
		bound.SetRadios(def.Name, entries)
	case "aggregate_id":
		entries := make([]types.EndpointEntry, 0, len(rows))
		for _, row := range rows {
			entries = append(entries, types.EndpointEntry{AggregateID: row["aggregate_id"]})
		}
		bound.SetEndpoints(def.Name, entries)
	case "node_id":
		entries := make([]types.EndpointEntry, 0, len(rows))
		for _, row := range rows {
			entries = append(entries, types.EndpointEntry{NodeID: row["node_id"]})
		}
		bound.SetEndpoints(def.Name, entries)
	}
}

func optionAllowed(opts []types.Option, v string) bool {
	if len(opts) == 0 {
		return true
	}
	return slices.ContainsFunc(opts, func(o types.Option) bool { return o.Value == v })
}

func toFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, fmt.Errorf("expected a number, got %T", v)
}

// toStringMap normalizes a YAML mapping into map[string]string. yaml.v2
// decodes nested mappings with interface{} keys.
func toStringMap(v interface{}) (map[string]string, error) {
	out := map[string]string{}

	switch m := v.(type) {
	case map[string]interface{}:
		for k, val := range m {
			s, ok := val.(string)
			if !ok {
				return nil, fmt.Errorf("field %q: expected a string, got %T", k, val)
			}
			out[k] = s
		}
	case map[interface{}]interface{}:
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("expected string keys, got %T", k)
			}
			s, ok := val.(string)
			if !ok {
				return nil, fmt.Errorf("field %q: expected a string, got %T", ks, val)
			}
			out[ks] = s
		}
	default:
		return nil, fmt.Errorf("expected a mapping, got %T", v)
	}

	return out, nil
}
