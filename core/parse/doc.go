// Package parse turns tool arguments supplied as text into Go values.
//
// Arguments come from MCP hosts and from the command line, and are not
// always well-formed JSON. [ParseStringAs] repairs common defects with
// jsonrepair and unwraps schema-style envelopes before giving up. Number
// literals are kept as json.Number so they reach the remote API unchanged.
package parse
