// internal/params/params.go
package params

// Set is one logical parameter set. All values are pre-rendered as
// strings because the device form is text only.
type Set map[string]string

// Defaults returns the stock parameter set shared by both firmware
// versions. Legacy firmware simply ignores the extended-only keys
// because its field mapping never projects them.
func Defaults() Set {
	return Set{
		"psip_mode":          "1",
		"sequence_script":    "",
		"seq_loop_count":     "1",
		"stimulus_plus_p1":   "0",
		"stimulus_minus_p2":  "0",
		"sense_plus_p3":      "0",
		"sense_minus_p4":     "0",
		"start_freq":         "1000.0",
		"stop_freq":          "0.01",
		"n_steps":            "51",
		"amplitude":          "5.0",
		"settle_time":        "1",
		"settle_cycles":      "1",
		"integration_time":   "5",
		"integration_cycles": "5",
		"resistor_ohm":       "1000",
		"loop_count":         "1",
		"master_slave_sel":   "0",
		"ext_trigger_sel":    "0",
		"filename":           "sip_results",
		"comment":            "comment",
		"submit":             "1",
	}
}

// Merge returns a copy of s with overrides applied key by key.
// Shallow by contract: an override replaces the default verbatim.
func (s Set) Merge(overrides map[string]string) Set {
	out := make(Set, len(s)+len(overrides))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}
