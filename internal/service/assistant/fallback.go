package assistant

import (
	"fmt"
	"strings"

	chatmodel "github.com/centralaluminiosdelvalle/backend/internal/model/chat"
	invmodel "github.com/centralaluminiosdelvalle/backend/internal/model/inventory"
)

// productExamples seeds the generic invitation when no item matches.
var productExamples = []string{
	"Perfiles de aluminio",
	"Vidrio templado",
	"Ventanas",
	"Mamparas",
}

// respondLocally is the canned responder used when the completion
// endpoint is unavailable or fails. It answers directly from the
// inventory snapshot. A product-name match takes priority over the
// broader topic buckets so stock questions always get exact figures.
func respondLocally(items []invmodel.Item, userText string) chatmodel.Response {
	matches := matchItems(items, userText, 0)

	if len(matches) > 0 {
		var b strings.Builder
		b.WriteString("Esto es lo que encontré en nuestro inventario:\n")
		for _, item := range matches {
			fmt.Fprintf(&b, "• %s: %d unidades disponibles\n", item.Name, item.Quantity)
		}
		b.WriteString("¿Cuál de estos te interesa?")

		return chatmodel.Response{
			Message: b.String(),
			Kind:    chatmodel.KindInventory,
			Payload: matches,
		}
	}

	if resp, ok := matchTopic(userText); ok {
		return resp
	}

	return chatmodel.Response{
		Message:     "Hola, soy el asistente virtual de Central de Aluminios del Valle. Dime el nombre del producto que te interesa y reviso su disponibilidad en el inventario.",
		Kind:        chatmodel.KindText,
		Suggestions: productExamples,
	}
}

// matchTopic answers the broad question buckets the assistant can
// handle without the completion endpoint: products, stock, quotes, and
// company background. Buckets are checked in a fixed order, first hit
// wins.
func matchTopic(userText string) (chatmodel.Response, bool) {
	lower := strings.ToLower(userText)
	contains := func(keywords ...string) bool {
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				return true
			}
		}
		return false
	}

	switch {
	case contains("producto", "aluminio", "vidrio"):
		return chatmodel.Response{
			Message:     "Tenemos una amplia gama de productos en aluminio y vidrio. ¿Te interesa alguna categoría específica?",
			Kind:        chatmodel.KindProduct,
			Suggestions: []string{"Ver más productos", "Consultar precios", "Solicitar cotización"},
		}, true
	case contains("stock", "disponible", "inventario"):
		return chatmodel.Response{
			Message:     "Puedo consultar la disponibilidad de cualquier producto. ¿Qué producto específico te interesa?",
			Kind:        chatmodel.KindInventory,
			Suggestions: productExamples,
		}, true
	case contains("cotiz", "precio", "costo"):
		return chatmodel.Response{
			Message:     "Puedo ayudarte a generar una cotización personalizada. ¿Qué productos necesitas y para qué tipo de proyecto?",
			Kind:        chatmodel.KindQuote,
			Suggestions: []string{"Proyecto residencial", "Proyecto comercial", "Proyecto industrial"},
		}, true
	case contains("empresa", "nosotros", "experiencia"):
		return chatmodel.Response{
			Message:     "Central de Aluminios del Valle tiene más de 20 años de experiencia en soluciones de aluminio y vidrio en el Valle del Cauca. ¿Qué te gustaría saber específicamente?",
			Kind:        chatmodel.KindText,
			Suggestions: []string{"Nuestra historia", "Certificaciones", "Proyectos realizados", "Equipo de trabajo"},
		}, true
	}

	return chatmodel.Response{}, false
}
