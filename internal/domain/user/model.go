package user

import "time"

type User struct {
	ID        string
	Login     string
	Password  string // хэш
	CreatedAt time.Time
}

type BaseRequest struct {
	Login    string `json:"login" minLength:"3" maxLength:"32" doc:"Логин пользователя"`
	Password string `json:"password" minLength:"8" doc:"Пароль"`
}
