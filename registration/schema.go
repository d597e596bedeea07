package registration

import (
	formskema "github.com/reoring/formskema"
	"github.com/reoring/formskema/dsl"
)

// Rule messages.
const (
	MsgUsername   = "Username must be at least 3 characters long"
	MsgEmail      = "Invalid email address"
	MsgPassword   = "Password must be at least 6 characters long"
	MsgAge        = "Age must be a positive integer"
	MsgPostalCode = "Invalid postal code"
	MsgStreet     = "Street is required"
	MsgCity       = "City is required"
	MsgAddress    = "Invalid address"
)

// Field paths.
const (
	PathUsername   = "username"
	PathEmail      = "email"
	PathPassword   = "password"
	PathAge        = "age"
	PathAddress    = "address"
	PathStreet     = "address.street"
	PathCity       = "address.city"
	PathPostalCode = "address.postalCode"
)

const postalCodePattern = `^\d{5}$`

var schemas = [...]formskema.Schema[Record]{
	ModeStrict:  newSchema(ModeStrict),
	ModeLenient: newSchema(ModeLenient),
}

// SchemaFor returns the shared, immutable schema for mode. It panics on an
// undefined Mode.
func SchemaFor(mode Mode) formskema.Schema[Record] {
	if mode < 0 || int(mode) >= len(schemas) {
		panic("registration: undefined " + mode.String())
	}
	return schemas[mode]
}

func newSchema(mode Mode) formskema.Schema[Record] {
	address := dsl.Object().Message(MsgAddress).Describe("Address")
	if mode == ModeStrict {
		address.
			Field("street", dsl.String().NonEmpty(MsgStreet)).Required().
			Field("city", dsl.String().NonEmpty(MsgCity)).Required()
	} else {
		address.
			Field("street", dsl.String()).Optional().
			Field("city", dsl.String()).Optional()
	}
	address.Field("postalCode", dsl.String().Regex(postalCodePattern, MsgPostalCode)).Required()

	return dsl.MustBind[Record](dsl.Object().Describe("Registration").
		Field("username", dsl.String().Min(3, MsgUsername)).Required().
		Field("email", dsl.String().Email(MsgEmail)).Required().
		Field("password", dsl.String().Min(6, MsgPassword)).Required().
		Field("age", dsl.Int().Coerce().Min(0, MsgAge).Message(MsgAge)).Required().
		Field("address", dsl.SchemaOf(address.MustBuild())).Default(map[string]any{}))
}
