package forms

import "github.com/yukikurage/it-helpdesk/internal/services"

// MsgInvalidLogin is shown for unknown users, wrong passwords and inactive accounts alike.
const MsgInvalidLogin = "Please enter a correct username and password. Note that both fields may be case-sensitive."

type LoginForm struct {
	Username string `form:"username" binding:"required,max=150"`
	Password string `form:"password" binding:"required"`
}

func (f *LoginForm) ToInput() services.LoginInput {
	return services.LoginInput{
		Username: f.Username,
		Password: f.Password,
	}
}
