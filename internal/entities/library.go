package entities

type BookStatus string

const (
	BookStatusReading  BookStatus = "Reading"
	BookStatusRead     BookStatus = "Read"
	BookStatusWishlist BookStatus = "Wishlist"
)

// BookStatuses lists the allowed statuses in the order the add-book form offers them.
var BookStatuses = []BookStatus{BookStatusReading, BookStatusRead, BookStatusWishlist}

func (s BookStatus) Valid() bool {
	for _, status := range BookStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	// Password is stored and compared as plaintext. This is a known security
	// gap kept for compatibility with existing library databases.
	Password string `json:"-"`
}

type Book struct {
	ID      uint       `gorm:"primaryKey" json:"id"`
	OwnerID uint       `json:"owner_id"`
	Title   string     `json:"title"`
	Author  string     `json:"author"`
	Genre   string     `json:"genre"`
	Status  BookStatus `json:"status"`
	Owner   User       `gorm:"foreignKey:OwnerID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (Book) TableName() string {
	return "books"
}
