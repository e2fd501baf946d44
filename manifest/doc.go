// Package manifest defines the agent manifest document: name, description,
// version and the tool list with parameter/return schemas. The docserver
// package renders it; SchemaFromStruct helps generate parameter schemas from
// Go structs when assembling a manifest programmatically.
package manifest
