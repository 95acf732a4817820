package model

// Student - идентичность текущего студента. Аутентификация живёт в портале,
// бот хранит только то, что нужно репозиториям и оркестратору бронирования.
type Student struct {
	ID    string `json:"_id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// IsAuthenticated сообщает, привязан ли чат к студенту портала.
func (s Student) IsAuthenticated() bool {
	return s.ID != ""
}
