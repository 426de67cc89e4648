// Package output encodes jscore results for the terminal and for machines.
//
// # Formats
//
//   - human: plain text. Values implement Renderer to control the layout.
//   - json: indented JSON, keys in struct field order.
//   - yaml: two-space indented YAML.
//   - toml: TOML; the value must encode as a table (a struct or map).
//
// Encoding the same value twice yields identical bytes in every format.
// Callers keep that property by sorting slices before encoding, as
// complexity.Explain does for contributions.
//
// # Usage Example
//
//	format, err := output.ParseFormat(cfg.Output.Format)
//	if err != nil {
//	    return err
//	}
//	return output.Encode(os.Stdout, report, format)
package output
