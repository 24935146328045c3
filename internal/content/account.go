package content

// Account is a balance sheet line item key.
type Account string

const (
	AccountCash             Account = "cash"
	AccountReceivable       Account = "accountsReceivable"
	AccountInventory        Account = "inventory"
	AccountPrepaidExpenses  Account = "prepaidExpenses"
	AccountEquipment        Account = "equipment"
	AccountPayable          Account = "accountsPayable"
	AccountDeferredRevenue  Account = "deferredRevenue"
	AccountLoans            Account = "loans"
	AccountShareCapital     Account = "shareCapital"
	AccountRetainedEarnings Account = "retainedEarnings"
)

// Side is the half of the accounting equation an account sits on.
type Side int

const (
	SideAsset Side = iota
	SideLiability
	SideEquity
)

// AllAccounts returns every account in balance sheet display order.
func AllAccounts() []Account {
	return []Account{
		AccountCash,
		AccountReceivable,
		AccountInventory,
		AccountPrepaidExpenses,
		AccountEquipment,
		AccountPayable,
		AccountDeferredRevenue,
		AccountLoans,
		AccountShareCapital,
		AccountRetainedEarnings,
	}
}

// Valid reports whether a is a known account.
func (a Account) Valid() bool {
	switch a {
	case AccountCash, AccountReceivable, AccountInventory, AccountPrepaidExpenses,
		AccountEquipment, AccountPayable, AccountDeferredRevenue, AccountLoans,
		AccountShareCapital, AccountRetainedEarnings:
		return true
	}
	return false
}

// Side returns which part of the equation the account belongs to.
func (a Account) Side() Side {
	switch a {
	case AccountPayable, AccountDeferredRevenue, AccountLoans:
		return SideLiability
	case AccountShareCapital, AccountRetainedEarnings:
		return SideEquity
	default:
		return SideAsset
	}
}

// Label returns the display name of the account.
func (a Account) Label() string {
	switch a {
	case AccountCash:
		return "Cash"
	case AccountReceivable:
		return "Accounts Receivable"
	case AccountInventory:
		return "Inventory"
	case AccountPrepaidExpenses:
		return "Prepaid Expenses"
	case AccountEquipment:
		return "Equipment"
	case AccountPayable:
		return "Accounts Payable"
	case AccountDeferredRevenue:
		return "Deferred Revenue"
	case AccountLoans:
		return "Loans"
	case AccountShareCapital:
		return "Share Capital"
	case AccountRetainedEarnings:
		return "Retained Earnings"
	default:
		return string(a)
	}
}
