package view

type LoginForm struct {
	Email string
}

type RegisterForm struct {
	Email string
}
