package service

import "errors"

// Ошибки доменного уровня. Контроллер переводит их в HTTP-статусы,
// текст ошибок хранилища наружу не пробрасывается.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("already exists")
	ErrValidation = errors.New("invalid input")
	ErrForbidden  = errors.New("forbidden")
)
