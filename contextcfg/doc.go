// Package contextcfg implements the layered truncation/history policy model
// that controls what memory a planner prompt receives and how it is bounded.
//
// Three layers resolve in order:
//
//  1. Built-in numeric/boolean defaults
//  2. A YAML configuration document (kind: ContextConfig) with a defaults
//     block and per-planner override blocks
//  3. Environment variables, applied last: global knobs rewrite the defaults
//     and every already-materialized planner in place; planner-scoped knobs
//     (react, router, strategic) patch only their planner
//
// All configuration problems are recoverable: a bad document or malformed env
// integer logs a warning and the previous layer stays in effect. Truncation
// helpers (Truncate, TruncateJSON) live here as well since the marker format
// and logging toggle belong to the policy.
package contextcfg
