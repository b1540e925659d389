package domain

// AuthUser — профиль пользователя, который возвращает API при логине.
type AuthUser struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

// Session — результат успешного логина: bearer-токен и профиль.
type Session struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

// RegisterPayload — данные регистрации; отправляются multipart-формой,
// аватар опционален.
type RegisterPayload struct {
	Email                string
	Username             string
	Password             string
	PasswordConfirmation string
	// Avatar — содержимое файла аватара; пустой срез означает "без аватара".
	Avatar     []byte
	AvatarName string
}
