package types

type PlanType string

const (
	PlanTypeFree       PlanType = "Free"
	PlanTypeBasic      PlanType = "Basic"
	PlanTypeStartup    PlanType = "Startup"
	PlanTypeEnterprise PlanType = "Enterprise"
)

type Plan struct {
	Type PlanType `json:"type"`
}

type BillingDetails struct {
	Plan  Plan  `json:"plan"`
	Meter int64 `json:"meter"`
}
