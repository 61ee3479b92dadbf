package assistant

import (
	"fmt"
	"strings"

	invmodel "github.com/centralaluminiosdelvalle/backend/internal/model/inventory"
)

// buildSystemPrompt embeds the full inventory snapshot, one line per
// item, plus the behavioral instructions for the assistant. The prompt
// is rebuilt from a fresh snapshot on every turn.
func buildSystemPrompt(snapshot invmodel.Snapshot) string {
	var b strings.Builder

	b.WriteString("Eres el asistente virtual de Central de Aluminios del Valle, ")
	b.WriteString("una empresa de fabricación en aluminio y vidrio del Valle del Cauca.\n\n")

	b.WriteString("Inventario actual:\n")
	for _, item := range snapshot.Items {
		fmt.Fprintf(&b, "%s: %d unidades disponibles\n", item.Name, item.Quantity)
	}

	b.WriteString("\nInstrucciones:\n")
	b.WriteString("- Responde siempre de forma amable y cercana.\n")
	b.WriteString("- Cuando pregunten por disponibilidad, usa las cifras exactas del inventario.\n")
	b.WriteString("- Si el producto no aparece en el inventario, sugiere alternativas similares.\n")
	b.WriteString("- Si no estás seguro de una respuesta, ofrece poner al cliente en contacto con un asesor humano.")

	return b.String()
}
