package models

// Ownership says who may see a category. It is either OwnedBy or Global.
type Ownership interface {
	isOwnership()
}

// OwnedBy marks a category private to one user.
type OwnedBy struct {
	UserID int64
}

// Global marks a shared default category visible to every user.
type Global struct{}

func (OwnedBy) isOwnership() {}
func (Global) isOwnership()  {}

type Category struct {
	ID    int64
	Name  string
	Type  EntryType
	Owner Ownership
}

// VisibleTo reports whether userID may read the category.
func (c *Category) VisibleTo(userID int64) bool {
	switch o := c.Owner.(type) {
	case OwnedBy:
		return o.UserID == userID
	case Global:
		return true
	default:
		return false
	}
}

// OwnerID returns the owning user id, or nil for a global category.
func (c *Category) OwnerID() *int64 {
	if o, ok := c.Owner.(OwnedBy); ok {
		id := o.UserID
		return &id
	}
	return nil
}
