package types

import "github.com/ethereum/go-ethereum/common"

// ClaimDraft is the bank's organization identity captured during onboarding.
type ClaimDraft struct {
	LegalName  string `json:"legalName"`
	BrandName  string `json:"brandName"`
	ShortCode  string `json:"shortCode"`
	Authorized bool   `json:"authorized"`
}

// RailDetails describes a US rail (wire or ACH).
type RailDetails struct {
	Routing string `json:"routing"`
	Account string `json:"account"`
	Notes   string `json:"notes"`
}

// IntlDetails describes the international rail.
type IntlDetails struct {
	IBAN  string `json:"iban"`
	BIC   string `json:"bic"`
	Notes string `json:"notes"`
}

// RailsDraft is the editable set of rails. Disabled rails keep whatever the
// user typed so re-enabling them restores the values.
type RailsDraft struct {
	EnableWire bool        `json:"enableWire"`
	EnableACH  bool        `json:"enableACH"`
	EnableIntl bool        `json:"enableIntl"`
	Wire       RailDetails `json:"wire"`
	ACH        RailDetails `json:"ach"`
	Intl       IntlDetails `json:"intl"`
}

func (d *RailsDraft) AnyEnabled() bool {
	return d != nil && (d.EnableWire || d.EnableACH || d.EnableIntl)
}

// EnabledRailNames lists the enabled rails using their display names.
func (d *RailsDraft) EnabledRailNames() []string {
	names := make([]string, 0, 3)
	if d == nil {
		return names
	}
	if d.EnableWire {
		names = append(names, RailNameWire)
	}
	if d.EnableACH {
		names = append(names, RailNameACH)
	}
	if d.EnableIntl {
		names = append(names, RailNameInternational)
	}
	return names
}

const (
	RailNameWire          = "US Wires"
	RailNameACH           = "ACH"
	RailNameInternational = "International"
)

// WalletIdentity is the locally remembered wallet connection.
type WalletIdentity struct {
	Connected bool           `json:"connected"`
	Address   common.Address `json:"address"`
}
