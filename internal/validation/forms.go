package validation

type CreateSoupForm struct {
	Content string `json:"content" validate:"required,notblank,max=10000"`
}

// UpdateSoupForm only overwrites the fields that are present.
type UpdateSoupForm struct {
	Content *string `json:"content" validate:"omitnil,notblank,max=10000"`
}

type CommentForm struct {
	Content string `json:"content" validate:"required,notblank,max=10000"`
}

type CreateUserForm struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,notblank,max=64"`
}

type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

var (
	CreateSoup = NewPipe[CreateSoupForm]()
	UpdateSoup = NewPipe[UpdateSoupForm]()
	Comment    = NewPipe[CommentForm]()
	CreateUser = NewPipe[CreateUserForm]()
	Login      = NewPipe[LoginForm]()
)
