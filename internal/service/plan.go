package service

const planCurrency = "ARS"

type Plan struct {
	Code      string
	Title     string
	UnitPrice int32
}

// Fixed catalog; prices are whole ARS.
var plans = map[string]Plan{
	"monthly": {
		Code:      "monthly",
		Title:     "Suscripción Mensual",
		UnitPrice: 20000,
	},
	"annual": {
		Code:      "annual",
		Title:     "Suscripción Anual (2 meses gratis)",
		UnitPrice: 200000,
	},
}

func PlanByCode(code string) (Plan, bool) {
	plan, ok := plans[code]
	return plan, ok
}
