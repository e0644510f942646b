// Package services contains pure domain logic for the mynotes service:
// the ownership guard and the pagination policy.
package services

import "mynotes/internal/mynotes/domain/entities"

// Owns сообщает, принадлежит ли заметка указанному пользователю.
// Заметки видны и изменяемы только их владельцу; модели совместного
// доступа здесь нет, поэтому проверка сводится к сравнению полей.
func Owns(userID int64, note *entities.Note) bool {
	return note != nil && note.UserID == userID
}
