package domain

// Account models a staff member able to log into the terminal.
// PasswordHash never leaves the storage layer: read projections and JSON
// encoding both exclude it.
type Account struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	IsAdmin      bool   `json:"is_admin"`
	Enabled      bool   `json:"enabled"`
}
