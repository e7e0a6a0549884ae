package domain

// User represents a bot user
type User struct {
	ID       int64  `db:"id"`
	Username string `db:"username"`
}
