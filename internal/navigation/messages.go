package navigation

// Messages shown to the user by both front ends.
const (
	MsgInvalidInput       = "Invalid input"
	MsgInvalidCredentials = "Invalid email or password"
	MsgMissingFields      = "All fields are required"
	MsgRegistered         = "Registration successful! Please login."
	MsgLoggedIn           = "Login successful!"
	MsgBookAdded          = "Book added successfully!"
	MsgNoBooks            = "No books found. Add some!"
)
