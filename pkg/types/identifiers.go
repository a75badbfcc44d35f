package types

// ExtractedIdentifiers holds the raw substrings pulled from pasted payment
// instructions. An empty string means the identifier was not found.
type ExtractedIdentifiers struct {
	Routing string `json:"routing"`
	Account string `json:"account"`
	IBAN    string `json:"iban"`
	BIC     string `json:"bic"`
}

// NormalizedIdentifiers holds the canonical forms that get hashed: digits only
// for routing and account, upper-case without whitespace for IBAN and BIC.
type NormalizedIdentifiers struct {
	Routing string `json:"routing"`
	Account string `json:"account"`
	IBAN    string `json:"iban"`
	BIC     string `json:"bic"`
}

func (n NormalizedIdentifiers) Any() bool {
	return n.Routing != "" || n.Account != "" || n.IBAN != "" || n.BIC != ""
}

func (n NormalizedIdentifiers) HasUS() bool {
	return n.Routing != "" || n.Account != ""
}

func (n NormalizedIdentifiers) HasInternational() bool {
	return n.IBAN != "" || n.BIC != ""
}
