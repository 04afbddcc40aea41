package domain

// Customer is a derived snapshot, never stored. Identity is the phone
// number; a customer exists only while at least one invoice carries it.
type Customer struct {
	Name     string
	Phone    string
	Address  string
	Category CustomerCategory
}
