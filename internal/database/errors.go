package database

import "errors"

// ErrNotFound помечает отсутствие записи (или чужую запись) и отличает
// его от инфраструктурных ошибок при выборе кода ответа.
var ErrNotFound = errors.New("не найдено")
