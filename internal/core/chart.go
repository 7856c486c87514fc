package core

// ChartOfAccounts is the static account reference list, kept in display order.
type ChartOfAccounts struct {
	accounts []Account
	byCode   map[string]Account
}

// NewChartOfAccounts indexes the given accounts by code. Later duplicates win.
func NewChartOfAccounts(accounts []Account) *ChartOfAccounts {
	c := &ChartOfAccounts{
		accounts: make([]Account, len(accounts)),
		byCode:   make(map[string]Account, len(accounts)),
	}
	copy(c.accounts, accounts)
	for _, a := range accounts {
		c.byCode[a.Code] = a
	}
	return c
}

// Accounts returns a copy of the chart in display order.
func (c *ChartOfAccounts) Accounts() []Account {
	out := make([]Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}

// Lookup returns the account for code and whether it exists.
func (c *ChartOfAccounts) Lookup(code string) (Account, bool) {
	a, ok := c.byCode[code]
	return a, ok
}

// AccountName returns the account's name, or the raw code when the code is unknown.
func (c *ChartOfAccounts) AccountName(code string) string {
	if a, ok := c.byCode[code]; ok {
		return a.Name
	}
	return code
}
