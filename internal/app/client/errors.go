package client

import "errors"

var (
	// ErrUnauthenticated - нет активной сессии или сервер ее отклонил.
	ErrUnauthenticated = errors.New("not signed in")
	// ErrUnavailable - сервер недоступен, вернул 5xx или неразбираемый ответ.
	ErrUnavailable = errors.New("service unavailable")
	ErrNotFound    = errors.New("not found")
	// ErrValidation - некорректный ввод, обнаруженный клиентом или сервером.
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("already exists")
)
