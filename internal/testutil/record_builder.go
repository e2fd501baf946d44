package testutil

import (
	"github.com/hivemem/hivemem/feed"
)

// RecordBuilder provides a fluent helper for constructing feed records in
// tests. Example:
//
//	rec := NewRecordBuilder().Type("obs").Content("saw a thing").Build()
//
// Chain only the parts you need.
type RecordBuilder struct {
	fields feed.Record
}

// NewRecordBuilder creates an empty builder.
func NewRecordBuilder() *RecordBuilder {
	return &RecordBuilder{fields: feed.Record{}}
}

// Type sets the record's type label (chainable).
func (b *RecordBuilder) Type(t string) *RecordBuilder {
	b.fields["type"] = t
	return b
}

// Content sets the record's content (chainable).
func (b *RecordBuilder) Content(c any) *RecordBuilder {
	b.fields["content"] = c
	return b
}

// Field sets an arbitrary key/value pair (chainable).
func (b *RecordBuilder) Field(key string, value any) *RecordBuilder {
	b.fields[key] = value
	return b
}

// Build returns the constructed record.
func (b *RecordBuilder) Build() feed.Record {
	out := make(feed.Record, len(b.fields))
	for k, v := range b.fields {
		out[k] = v
	}
	return out
}
