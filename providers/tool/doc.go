// Package tool provides the types for defining and executing tools exposed
// to a tool-invocation host.
//
// A tool wraps a typed Go function together with its name, description and
// input schema. The main entry point is [NewTool]; [WithDescription],
// [WithParameters] and [WithStrictArguments] configure it. [Tool.Call]
// accepts loosely formatted JSON arguments and returns JSON output.
//
// The [Catalog] type offers a thread-safe registry of tools; use
// [NewCatalog] or [NewCatalogWithTools] to create one.
package tool
