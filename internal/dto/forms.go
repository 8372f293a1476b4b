package dto

// LoginForm is the login submission.
type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// NameForm is the shared status/label form.
type NameForm struct {
	Name string `form:"name"`
}

// UserForm is the registration and profile-edit form. On edit, an empty
// password leaves the credential unchanged.
type UserForm struct {
	FirstName            string `form:"first_name"`
	LastName             string `form:"last_name"`
	Username             string `form:"username"`
	Password             string `form:"password"`
	PasswordConfirmation string `form:"password_confirmation"`
}

// TaskForm is the task create/update form. There is no owner field; the
// owner comes from the session.
type TaskForm struct {
	Name        string   `form:"name"`
	Description string   `form:"description"`
	StatusID    uint64   `form:"status"`
	ExecutorID  uint64   `form:"executor"`
	LabelIDs    []uint64 `form:"labels"`
}
