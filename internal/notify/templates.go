package notify

// Template ids referenced by services. Keep in sync with DefaultSources so
// the renderer's startup check covers every job the services can enqueue.
const (
	TemplateRegistrationComplete = "registration_complete"
	TemplateAssetCreated         = "asset_created"
	TemplateSubscriptionLapsed   = "subscription_lapsed"
)

// DefaultSources is the portal's transactional message set.
func DefaultSources() []Source {
	return []Source{
		{
			Name: TemplateRegistrationComplete,
			Text: `Hi {{.first_name}},

Your account has been registered.

Log in any time at {{.login_link}} to see your fleet.

- The Fleetgate Team
`,
			HTML: `<p>Hi {{.first_name}},</p>
<p>Your account has been registered.</p>
<p><a href="{{.login_link}}">Log in</a> any time to see your fleet.</p>
<p>- The Fleetgate Team</p>
`,
		},
		{
			Name: TemplateAssetCreated,
			Text: `A new asset was registered.

VIN:  {{.vin}}
IMEI: {{.imei}}
Account: {{.account}}
`,
		},
		{
			Name: TemplateSubscriptionLapsed,
			Text: `Hi {{.first_name}},

Your tracking subscription has lapsed. Renew at {{.renew_link}} to keep
live updates for your fleet.

- The Fleetgate Team
`,
		},
	}
}
