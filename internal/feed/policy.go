package feed

import "github.com/shivam-bit/highlight/internal/types"

// NewProjectMeterThreshold is the session meter below which a free project is
// assumed to still have all of its sessions live.
const NewProjectMeterThreshold = 15

// ShouldForceLive reports whether live sessions should be shown so a new
// project's feed is not empty while its first sessions are processed.
func ShouldForceLive(billing *types.BillingDetails, integrated bool) bool {
	if billing == nil || !integrated {
		return false
	}
	return billing.Plan.Type == types.PlanTypeFree && billing.Meter < NewProjectMeterThreshold
}

// LiveToggler is the part of the search parameter store the policy writes.
type LiveToggler interface {
	SetShowLiveSessions(show bool) bool
}

// ApplyNewProjectPolicy turns live sessions on when ShouldForceLive holds. It
// reports whether the params changed.
func ApplyNewProjectPolicy(store LiveToggler, billing *types.BillingDetails, integrated bool) bool {
	if store == nil || !ShouldForceLive(billing, integrated) {
		return false
	}
	return store.SetShowLiveSessions(true)
}
