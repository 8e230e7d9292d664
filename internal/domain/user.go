package domain

type Role string

const (
	RoleClient Role = "CLIENT"
	RoleAdmin  Role = "ADMIN"
)

func (r Role) Valid() bool {
	return r == RoleClient || r == RoleAdmin
}

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	Name         string
	Surname      string
	Email        string
	PhoneNumber  string
	Address      string
}
