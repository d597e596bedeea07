// Package formskema validates form candidates against declarative schemas.
//
// It provides:
//
// - Type-safe parsing of untyped candidates into typed records via Schema[T]
// - A stable error model via Issues (dot-joined field path, code, message)
// - Document inputs (JSON/YAML) through Source with duplicate-key/depth/size enforcement
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place the schema DSL under dsl/, token sources under source/, and the CLI under cmd/formskema.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	s := registration.SchemaFor(registration.ModeStrict)
//	rec, err := s.Parse(ctx, candidate)
//	rec, err = formskema.ParseFrom(ctx, s, formskema.JSONBytes(data))
//	msgs := formskema.ByPath(err) // path -> first message, for rendering next to fields
package formskema
