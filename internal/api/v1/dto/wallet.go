package dto

// WalletStatsDTO holds the revenue totals of the admin wallet
type WalletStatsDTO struct {
	TotalRevenue        int64  `json:"total_revenue"`
	MonthRevenue        int64  `json:"month_revenue"`
	ActiveSubscriptions int    `json:"active_subscriptions"`
	Accounts            int    `json:"accounts"`
	Currency            string `json:"currency"`
}

// WalletRowDTO is one subscription line in the admin wallet
type WalletRowDTO struct {
	EntitlementResponseDTO
	Email   string `json:"email"`
	Expired bool   `json:"expired"`
}

// WalletResponse is the admin wallet page payload
type WalletResponse struct {
	Stats         WalletStatsDTO `json:"stats"`
	Subscriptions []WalletRowDTO `json:"subscriptions"`
}

// WalletExportResponse points at the uploaded wallet snapshot
type WalletExportResponse struct {
	Key string `json:"key"`
}
