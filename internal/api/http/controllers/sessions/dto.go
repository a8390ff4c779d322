package sessions

import "pocketCalc/internal/domain"

// PressRequest — клавиши для POST /api/v1/sessions/:id/keys, применяются по порядку.
type PressRequest struct {
	Keys []string `json:"keys" binding:"required,min=1"`
}

// DisplayResponse — id сессии и текущий дисплей.
type DisplayResponse struct {
	ID      string `json:"id"`
	Display string `json:"display"`
}

// SessionResponse — полное состояние сессии (GET /api/v1/sessions/:id).
type SessionResponse struct {
	ID              string `json:"id"`
	Display         string `json:"display"`
	PendingOperator string `json:"pending_operator"`
	AwaitingOperand bool   `json:"awaiting_operand"`
	Version         int    `json:"version"`
}

// ErrorResponse — тело ответа при ошибке.
type ErrorResponse struct {
	Error string `json:"error"`
}

func toDisplay(s *domain.Session) DisplayResponse {
	return DisplayResponse{ID: s.ID, Display: s.State.Display}
}

func toSession(s *domain.Session) SessionResponse {
	return SessionResponse{
		ID:              s.ID,
		Display:         s.State.Display,
		PendingOperator: string(s.State.Pending),
		AwaitingOperand: s.State.AwaitingOperand,
		Version:         s.Version,
	}
}
