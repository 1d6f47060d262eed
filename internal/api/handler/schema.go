package handler

// Form payloads bound from the HTML forms. Empty-credential checks live in
// the auth service so the original form messages stay intact; the validator
// guards the numeric and reference fields.

type signupForm struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

type promoteForm struct {
	Fee float64 `form:"fee" validate:"required,gt=0"`
}

type pickupForm struct {
	PickupDate  string `form:"pickupDate"  validate:"required"`
	LaundererID string `form:"laundererId" validate:"required"`
}
