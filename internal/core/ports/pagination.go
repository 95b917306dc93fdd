package ports

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// Page captures offset pagination parameters as sent by clients.
type Page struct {
	Page  int
	Limit int
}

// Normalize clamps the parameters to sane values (page ≥ 1, 1 ≤ limit ≤ 100)
// and applies the defaults for missing fields.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = defaultPage
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

// Offset returns the number of rows to skip.
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}
