// Package database provides the data access layer for the library.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup and table creation
//	├── books/           # Catalog store: add and list a user's books
//	└── users/           # Credential store: register and authenticate
//
// Both tables are append-only. Neither repository updates or deletes rows.
//
// # Connections
//
// Every repository call runs on its own GORM session bound to the caller's
// context. The session borrows a connection from the database/sql pool and
// returns it when the statement finishes, on success and on error alike.
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase("./library.db", false)
//
//	usersRepo := users.NewRepository(db.DB)
//	booksRepo := books.NewRepository(db.DB)
//
//	user, err := usersRepo.Register(ctx, "alice", "alice@x.com", "pw1")
//	err = booksRepo.AddBook(ctx, &entities.Book{OwnerID: user.ID, Title: "Dune"})
package database
