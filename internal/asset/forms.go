package asset

import (
	"context"

	"fleetgate/internal/device"
	"fleetgate/internal/form"
	"fleetgate/internal/validation"
)

const (
	vinLength     = 17
	imeiMaxDigits = 18
)

// Forms bundles the asset submission forms. The create form's IMEI checks
// consult the device directory: a unit must exist (not_found otherwise) and
// must not be bound to another asset yet (invalid otherwise).
type Forms struct {
	create *form.Form
	update *form.Form
}

func NewForms(devices device.Store, accounts []string) *Forms {
	return &Forms{
		create: form.MustNew(
			form.Field{Name: "name", Label: "Asset name", Kind: form.KindChar, MaxLength: 64},
			form.Field{Name: "vin_number", Label: "VIN", Kind: form.KindChar, Required: true,
				Validators: []validation.Validator{validation.FixedLength(vinLength)}},
			form.Field{Name: "imei_number", Label: "IMEI", Kind: form.KindChar, Required: true,
				Validators: []validation.Validator{
					validation.Digits(),
					validation.MaxLength(imeiMaxDigits),
					validation.Exists(device.DirectoryLookup(devices), "device"),
					device.Unassigned(devices),
				}},
			form.Field{Name: "account", Label: "Account", Kind: form.KindChoice, Required: true, Choices: accounts},
		),
		update: form.MustNew(
			form.Field{Name: "name", Label: "Asset name", Kind: form.KindChar, Required: true, MaxLength: 64},
		),
	}
}

func (f *Forms) SubmitCreate(ctx context.Context, raw map[string]string) (form.Payload, []validation.Error, error) {
	return f.create.Submit(ctx, raw)
}

func (f *Forms) SubmitUpdate(ctx context.Context, raw map[string]string) (form.Payload, []validation.Error, error) {
	return f.update.Submit(ctx, raw)
}
