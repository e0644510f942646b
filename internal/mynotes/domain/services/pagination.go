package services

// DefaultPerPage - размер страницы списка заметок по умолчанию.
const DefaultPerPage = 5

// NormalizeWindow приводит окно выборки к допустимым значениям:
// неположительный limit заменяется на fallback (или DefaultPerPage),
// отрицательный offset обнуляется.
func NormalizeWindow(limit, offset, fallback int) (int, int) {
	if fallback <= 0 {
		fallback = DefaultPerPage
	}
	if limit <= 0 {
		limit = fallback
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// HasMore сообщает, существует ли следующая страница. rowsReturned -
// количество строк, фактически полученных запросом на limit+1 строк;
// лишняя строка и есть признак следующей страницы.
func HasMore(limit, rowsReturned int) bool {
	return rowsReturned > limit
}

// NextOffset возвращает смещение следующей страницы.
func NextOffset(offset, limit int) int {
	return offset + limit
}

// PrevOffset возвращает смещение предыдущей страницы, не уходя ниже нуля.
func PrevOffset(offset, limit int) int {
	if offset-limit < 0 {
		return 0
	}
	return offset - limit
}

// HasPrev сообщает, существует ли предыдущая страница.
func HasPrev(offset int) bool {
	return offset > 0
}
