package apiclient

import (
	"encoding/json"
	"fmt"

	"github.com/Freeeeeet/portal_bot/internal/model"
)

// Бэкенд отдаёт сессии студента в одной из трёх форм:
//
//	[ {...}, {...} ]              - голый массив
//	{ "sessions": [ {...} ] }     - объект с полем sessions
//	{ "_id": ..., "slot_id": ...} - одиночная сессия
//
// decodeSessions приводит все три к []model.Session. Любая другая форма -
// ошибка; вызывающий решает, деградировать до пустого списка или нет.
func decodeSessions(body []byte) ([]model.Session, error) {
	var asArray []model.Session
	if err := json.Unmarshal(body, &asArray); err == nil {
		return asArray, nil
	}

	var asEnvelope struct {
		Sessions []model.Session `json:"sessions"`
	}
	if err := json.Unmarshal(body, &asEnvelope); err == nil && asEnvelope.Sessions != nil {
		return asEnvelope.Sessions, nil
	}

	var asSingle model.Session
	if err := json.Unmarshal(body, &asSingle); err == nil && asSingle.ID != "" {
		return []model.Session{asSingle}, nil
	}

	return nil, fmt.Errorf("unrecognized sessions payload")
}
