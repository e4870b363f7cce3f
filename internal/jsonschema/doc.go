// Package jsonschema provides the [Schema] type used to declare tool argument
// schemas, plus a [Validator] that checks decoded arguments against a schema.
//
// Schemas are plain data: callers build them as Go literals with the helpers
// [Object], [StringEnum] and [Bound]. Validation compiles the schema with
// github.com/kaptinlin/jsonschema on first use.
package jsonschema
