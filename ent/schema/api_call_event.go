package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// APICallEvent records one HTTP exchange with the study backend.
type APICallEvent struct {
	ent.Schema
}

func (APICallEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (APICallEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("request_id").
			Default("").
			Comment("Invocation id sent as X-Request-ID"),
		field.String("action").
			NotEmpty().
			Comment("upload, summary, flashcards-generate, ..."),
		field.String("method"),
		field.String("path"),
		field.Int("status_code").
			Default(0).
			Comment("0 when no response was received"),
		field.Int64("latency_ms").
			Default(0),
		field.Int("attempt").
			Default(1).
			Comment("1-based retry attempt"),
		field.Bool("success"),
		field.String("error_message").
			Default(""),
		field.String("response_body").
			Default("").
			Comment("Truncated response excerpt"),
	}
}

func (APICallEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("action"),
	}
}
