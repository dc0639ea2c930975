package models

// Profile is the business profile stored under key "user".
// It prefills issuer and bank details on new invoices.
type Profile struct {
	BusinessName   string `json:"businessName"`
	Email          string `json:"email"`
	AccountType    string `json:"accountType,omitempty"`
	CompanyName    string `json:"companyName,omitempty"`
	CompanyAddress string `json:"companyAddress,omitempty"`
	CompanyEmail   string `json:"companyEmail,omitempty"`
	CompanyPhone   string `json:"companyPhone,omitempty"`
	BankName       string `json:"bankName,omitempty"`
	BankAccount    string `json:"bankAccount,omitempty"`
	BankIFSC       string `json:"bankIfsc,omitempty"`
	Currency       string `json:"currency,omitempty"`
}

// Company returns the issuer block for invoices created under this profile
func (p Profile) Company() *Company {
	name := p.CompanyName
	if name == "" {
		name = p.BusinessName
	}
	email := p.CompanyEmail
	if email == "" {
		email = p.Email
	}

	c := &Company{
		Name:        name,
		Address:     p.CompanyAddress,
		Email:       email,
		Phone:       p.CompanyPhone,
		BankName:    p.BankName,
		BankAccount: p.BankAccount,
		BankIFSC:    p.BankIFSC,
	}
	if *c == (Company{}) {
		return nil
	}
	return c
}
