package customer

import (
	"context"

	"fleetgate/internal/form"
	"fleetgate/internal/validation"
)

// Forms bundles the submission forms this domain accepts. Built once at
// startup; construction fails fast on a bad field declaration.
type Forms struct {
	registration *form.Form
	login        *form.Form
}

// NewForms wires the login form's username check against the user directory.
func NewForms(users validation.Lookup) *Forms {
	return &Forms{
		registration: form.MustNew(
			form.Field{Name: "first_name", Label: "First name", Kind: form.KindChar, MaxLength: 64},
			form.Field{Name: "last_name", Label: "Last name", Kind: form.KindChar, MaxLength: 64},
			form.Field{Name: "username", Label: "Email", Kind: form.KindEmail, Required: true, MinLength: 4, MaxLength: 150},
			form.Field{Name: "password1", Label: "Password", Kind: form.KindChar, Required: true,
				Validators: []validation.Validator{validation.Password()}},
			form.Field{Name: "password2", Label: "Password confirmation", Kind: form.KindChar, Required: true},
		),
		login: form.MustNew(
			form.Field{Name: "username", Label: "Email", Kind: form.KindEmail, Required: true,
				Validators: []validation.Validator{validation.Exists(users, "user")}},
			form.Field{Name: "password", Label: "Password", Kind: form.KindChar, Required: true},
		),
	}
}

// SubmitRegistration validates a registration submission. The passwords must
// match; a mismatch is reported as a single rejection on password2.
func (f *Forms) SubmitRegistration(ctx context.Context, raw map[string]string) (form.Payload, []validation.Error, error) {
	payload, errs, err := f.registration.Submit(ctx, raw)
	if err != nil {
		return nil, nil, err
	}
	if len(errs) == 0 && payload.Get("password1") != payload.Get("password2") {
		errs = append(errs, validation.Error{
			Field:           "password2",
			Code:            validation.CodeInvalid,
			MessageTemplate: "passwords do not match",
		})
	}
	if len(errs) > 0 {
		return nil, errs, nil
	}
	return payload, nil, nil
}

// SubmitLogin validates a login submission, including the username existence
// check against the user directory.
func (f *Forms) SubmitLogin(ctx context.Context, raw map[string]string) (form.Payload, []validation.Error, error) {
	return f.login.Submit(ctx, raw)
}
