package paypal

// Order — результат создания заказа: идентификатор и ссылка на страницу
// подтверждения оплаты, на которую перенаправляется покупатель.
type Order struct {
	ID         string
	ApproveURL string
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type createOrderRequest struct {
	Intent             string             `json:"intent"`
	PurchaseUnits      []purchaseUnit     `json:"purchase_units"`
	ApplicationContext applicationContext `json:"application_context"`
}

type purchaseUnit struct {
	Amount amount `json:"amount"`
}

type amount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type applicationContext struct {
	ReturnURL   string `json:"return_url"`
	CancelURL   string `json:"cancel_url"`
	LandingPage string `json:"landing_page"`
}

type createOrderResponse struct {
	ID    string `json:"id"`
	Links []link `json:"links"`
}

type link struct {
	Href string `json:"href"`
	Rel  string `json:"rel"`
}
