package valueobject

// PostingDefaults carries the company-level accounting defaults the ledger
// poster needs. It is built once from configuration and passed in
// explicitly; there is no ambient global lookup.
type PostingDefaults struct {
	costCenters map[string]string
	fallback    string
}

// NewPostingDefaults creates PostingDefaults from a company -> cost-center
// map and a fallback cost center used for companies without an entry.
func NewPostingDefaults(costCenters map[string]string, fallback string) PostingDefaults {
	cc := make(map[string]string, len(costCenters))
	for k, v := range costCenters {
		cc[k] = v
	}
	return PostingDefaults{costCenters: cc, fallback: fallback}
}

// CostCenterFor resolves the default cost center for a company.
func (d PostingDefaults) CostCenterFor(company string) string {
	if cc, ok := d.costCenters[company]; ok {
		return cc
	}
	return d.fallback
}
