package domain

// Company is one input row. All fields may be empty; Name is expected
// non-empty for anything useful to happen.
type Company struct {
	Name        string
	Website     string
	LinkedInURL string
	FounderName string
	Country     string
}
