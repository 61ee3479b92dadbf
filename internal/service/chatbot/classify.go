package chatbot

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/centralaluminiosdelvalle/backend/internal/model/chat"
)

// statusError carries a non-2xx response code through the error chain.
type statusError struct {
	Status int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Status)
}

// classify maps a transport failure to the user-facing response. No
// retry is attempted; the caller decides whether to re-invoke.
func classify(err error) chat.Response {
	if isTimeout(err) {
		return chat.Response{
			Message: "Lo siento, la consulta está tardando más de lo esperado. ¿Podrías intentar de nuevo?",
			Kind:    chat.KindError,
		}
	}

	var se *statusError
	if errors.As(err, &se) && se.Status == http.StatusNotFound {
		return chat.Response{
			Message:     "No encontré información sobre esa consulta. ¿Podrías ser más específico?",
			Kind:        chat.KindError,
			Suggestions: []string{"Ver catálogo de productos", "Contactar asesor", "Preguntas frecuentes"},
		}
	}

	return chat.Response{
		Message:     "Disculpa, estoy teniendo problemas técnicos. Un asesor humano te contactará pronto.",
		Kind:        chat.KindError,
		Suggestions: []string{"Llamar ahora: +57 (2) 123-4567", "Enviar email", "Programar llamada"},
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
