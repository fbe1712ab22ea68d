package dto

type RegisterInput struct {
	Username string
	Password string
	Name     string
	Email    string
}

type LoginInput struct {
	Username string
	Password string
}

type SessionOutput struct {
	UserID      int
	Username    string
	Name        string
	Email       string
	DisplayName string
	Key         string
}
