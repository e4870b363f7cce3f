// Package utils provides shared low-level helpers used by the Tavily adapter
// and the CLI: a raw JSON POST helper with observability events
// ([DoPostRaw]), response helpers ([StatusText], [IsSuccess],
// [CloseWithLog]) and string formatting helpers ([JSONToString],
// [TruncateString]).
package utils
