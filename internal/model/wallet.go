package model

// WalletStats aggregates revenue over all entitlement records.
type WalletStats struct {
	TotalRevenue        int64  `json:"total_revenue"`
	MonthRevenue        int64  `json:"month_revenue"`
	ActiveSubscriptions int    `json:"active_subscriptions"`
	Accounts            int    `json:"accounts"`
	Currency            string `json:"currency"`
}

// WalletRow is one entitlement as shown in the admin wallet.
type WalletRow struct {
	Entitlement Entitlement `json:"entitlement"`
	Expired     bool        `json:"expired"`
}
