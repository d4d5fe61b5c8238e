package adminusers

type UserView struct {
	ID       int64
	Username string
	Role     string
}

type PageData struct {
	Users        []UserView
	Status       string
	ErrorMessage string
}
