// Package assemble turns a memory view's raw output into the bounded,
// ordered context payload a planner prompt receives. It consults the policy
// model for inclusion flags, history caps and truncation limits, logging any
// truncation it performs. Prompt construction itself happens downstream.
package assemble
