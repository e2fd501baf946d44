// Package shared implements the namespaced coordinator over the raw feed
// store. It fixes the stream layout (conversation turns, global broadcast
// updates, per-agent private traces), stamps and parses conversation turns,
// and emits append diagnostics including a context propagation consistency
// check against the job id carried in the request context.
//
// Visibility policy (who may read which partitions) is not enforced here;
// that composition lives in the memory package.
package shared
