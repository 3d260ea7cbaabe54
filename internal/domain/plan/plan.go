// Package plan holds the subscription-plan catalog. A plan bounds staff
// count, daily patient intake and access to the billing module. A nil limit
// means unlimited.
package plan

// Plan names. "clinic+" keeps its marketing spelling.
const (
	Trial      = "trial"
	Basic      = "basic"
	Pro        = "pro"
	ClinicPlus = "clinic+"
)

// Subscription statuses for a clinic.
const (
	StatusTrial   = "trial"
	StatusActive  = "active"
	StatusExpired = "expired"
)

// Plan is one subscription tier.
type Plan struct {
	Name           string
	PatientsPerDay *int // nil = unlimited
	StaffLimit     *int // nil = unlimited; counts non-owner users
	Billing        bool // access to the billing module
	PriceINR       int  // monthly price; 0 = not purchasable
}

func intPtr(n int) *int { return &n }

var catalog = map[string]Plan{
	Trial:      {Name: Trial, PatientsPerDay: intPtr(20), StaffLimit: intPtr(0), Billing: false, PriceINR: 0},
	Basic:      {Name: Basic, PatientsPerDay: intPtr(60), StaffLimit: intPtr(2), Billing: true, PriceINR: 199},
	Pro:        {Name: Pro, PatientsPerDay: intPtr(150), StaffLimit: intPtr(5), Billing: true, PriceINR: 499},
	ClinicPlus: {Name: ClinicPlus, PatientsPerDay: nil, StaffLimit: nil, Billing: true, PriceINR: 999},
}

// Get returns the plan for name, falling back to the trial plan for unknown
// names so a corrupted clinic row never gains unlimited access.
func Get(name string) Plan {
	if p, ok := catalog[name]; ok {
		return p
	}
	return catalog[Trial]
}

// Purchasable reports whether the plan can be bought through checkout.
func Purchasable(name string) bool {
	p, ok := catalog[name]
	return ok && p.PriceINR > 0
}
