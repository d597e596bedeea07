// Package dsl provides the schema builders for formskema.
//
// Overview
//   - Builder API: declare object semantics (required/default/unknown keys) with Object()/Field()/Required()/MustBuild().
//   - Typed build: project the parsed map into a struct with Bind[T]/MustBind[T].
//   - Primitives: String() with Min/NonEmpty/Regex/Email rules, Int() with Coerce/Min.
//   - AnyAdapter: adapt an existing Schema[T] via SchemaOf[T](s) to embed it into builders.
//
// Evaluation
//   - Fields run in declaration order; a failing field never stops its siblings
//     unless the context is marked fail-fast (formskema.WithFailFast).
//   - Within one field the rule chain stops at the first failing rule.
//   - Nested issues are keyed by dot-joined path ("address.postalCode").
//   - A missing or null field takes its default when one is set; otherwise a
//     required field reports the message of its first rule.
//
// Quickstart
//
//	address := dsl.Object().
//		Field("postalCode", dsl.String().Regex(`^\d{5}$`, "Invalid postal code")).Required().
//		MustBuild()
//
//	user := dsl.MustBind[User](dsl.Object().
//		Field("username", dsl.String().Min(3, "Username must be at least 3 characters long")).Required().
//		Field("age", dsl.Int().Coerce().Min(0, "Age must be a positive integer")).Required().
//		Field("address", dsl.SchemaOf(address)).Default(map[string]any{}))
//
//	u, err := user.Parse(ctx, candidate)
//	err = formskema.CheckField(ctx, user, "address.postalCode", "1234")
package dsl
