package agent

import "strings"

// Intent labels returned by ClassifyIntent.
const (
	IntentEnergy    = "energy"
	IntentNotEnergy = "not_energy"
)

// energyKeywords is the bilingual (English/German) vocabulary that marks an
// utterance as in-domain.
var energyKeywords = []string{
	"energy", "strom", "electricity", "provider", "tariff", "switch", "wechsel",
	"energie", "gas", "contract", "vertrag", "power", "renewable", "green",
	"kwh", "kilowatt", "verbrauch", "rechnung", "bill", "anbieter", "tarif",
	"preis", "cost", "savings", "discount", "bonus", "grundversorgung",
	"sondertarif", "öko", "ökostrom",
}

// ClassifyIntent decides whether an utterance is about energy or energy
// provider switching. It is consulted only while a conversation is inactive;
// once a conversation is engaged the flow must complete or be reset.
func ClassifyIntent(utterance string) string {
	lower := strings.ToLower(utterance)
	for _, kw := range energyKeywords {
		if strings.Contains(lower, kw) {
			return IntentEnergy
		}
	}
	return IntentNotEnergy
}
