package format

import "strings"

// eventTranslations rewrites the recurring English carrier-event phrases
// into Portuguese before they reach a customer or the daily digest. Phrases
// already in Portuguese are left alone.
var eventTranslations = []struct {
	english    string
	portuguese string
}{
	{"Import customs clearance delay", "Atraso no desembaraço aduaneiro"},
	{"Import customs clearance complete", "Desembaraço aduaneiro concluído"},
	{"Import customs retained", "Retido na alfândega"},
	{"Customs duties payment requested", "Pagamento de taxas alfandegárias solicitado"},
	{"Customs charges due", "Taxas alfandegárias pendentes"},
	{"Pending customs inspection", "Aguardando inspeção aduaneira"},
	{"Package returning to sender", "Pacote retornando ao remetente"},
	{"Carrier note", "Nota da transportadora"},
	{"Awaiting payment", "Aguardando pagamento"},
}

// TranslateEvent replaces every known English phrase inside a carrier event
// description with its Portuguese equivalent.
func TranslateEvent(description string) string {
	translated := description
	for _, t := range eventTranslations {
		translated = strings.ReplaceAll(translated, t.english, t.portuguese)
	}
	return translated
}
