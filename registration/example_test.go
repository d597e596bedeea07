package registration_test

import (
	"context"
	"fmt"

	formskema "github.com/reoring/formskema"
	"github.com/reoring/formskema/registration"
)

func ExampleValidate() {
	_, err := registration.Validate(context.Background(), registration.Candidate{
		"username": "ab",
		"email":    "x",
		"password": "12345",
		"age":      "-3",
		"address":  map[string]any{"postalCode": "99"},
	}, registration.ModeLenient)

	iss, _ := formskema.AsIssues(err)
	for _, it := range iss {
		fmt.Printf("%s: %s\n", it.Path, it.Message)
	}
	// Output:
	// username: Username must be at least 3 characters long
	// email: Invalid email address
	// password: Password must be at least 6 characters long
	// age: Age must be a positive integer
	// address.postalCode: Invalid postal code
}

func ExampleForm() {
	ctx := context.Background()
	form := registration.NewForm(registration.ModeStrict)

	_ = form.Set(ctx, "address.postalCode", "1234")
	fmt.Println(form.Errors())
	_ = form.Set(ctx, "address.postalCode", "12345")
	fmt.Println(form.Errors())
	// Output:
	// map[address.postalCode:Invalid postal code]
	// map[]
}
