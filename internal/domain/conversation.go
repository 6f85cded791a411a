package domain

// Category is a conversation topic used to pick a system prompt or a
// storage container.
type Category string

const (
	CategoryAuto  Category = "auto"
	CategoryHR    Category = "hr"
	CategoryLegal Category = "legal"
	CategoryL1    Category = "l1"
	CategoryL2    Category = "l2"
)
