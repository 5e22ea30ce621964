package reporting

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The English text doubles as the key and is used verbatim
// when a locale has no translation. Keys are format strings, so a literal
// percent sign is written as %%.
const (
	msgTitle       = "Confusion Matrix Metrics"
	msgMatrix      = "Confusion matrix"
	msgResults     = "Results"
	msgVP          = "True positives (VP)"
	msgVN          = "True negatives (VN)"
	msgFP          = "False positives (FP)"
	msgFN          = "False negatives (FN)"
	msgAccuracy    = "Accuracy"
	msgPrecision   = "Precision"
	msgSensitivity = "Sensitivity"
	msgSpecificity = "Specificity"
	msgFScore      = "F-Score"
	msgRating      = "F-Score rating"
	msgCell        = "Cell"
	msgCount       = "Count"
	msgMetric      = "Metric"
	msgValue       = "Value"
	msgPercent     = "Percent"
	msgExcellent   = "Excellent (>90%%)"
	msgGood        = "Good (70-90%%)"
	msgNeedsWork   = "Needs Work (50-70%%)"
	msgPoor        = "Poor (<50%%)"
)

var portuguese = map[string]string{
	msgTitle:       "Métricas da Matriz de Confusão",
	msgMatrix:      "Matriz de confusão",
	msgResults:     "Resultados das métricas",
	msgVP:          "Verdadeiros positivos (VP)",
	msgVN:          "Verdadeiros negativos (VN)",
	msgFP:          "Falsos positivos (FP)",
	msgFN:          "Falsos negativos (FN)",
	msgAccuracy:    "Acurácia",
	msgPrecision:   "Precisão",
	msgSensitivity: "Sensibilidade",
	msgSpecificity: "Especificidade",
	msgFScore:      "F-Score",
	msgRating:      "Classificação do F-Score",
	msgCell:        "Célula",
	msgCount:       "Contagem",
	msgMetric:      "Métrica",
	msgValue:       "Valor",
	msgPercent:     "Percentual",
	msgExcellent:   "Excelente (>90%%)",
	msgGood:        "Bom (70-90%%)",
	msgNeedsWork:   "Precisa melhorar (50-70%%)",
	msgPoor:        "Fraco (<50%%)",
}

// supportedLocales lists the report languages; the first entry is the
// fallback.
var supportedLocales = []language.Tag{
	language.English,
	language.BrazilianPortuguese,
}

var (
	localeMatcher = language.NewMatcher(supportedLocales)
	messages      = buildCatalog()
)

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range portuguese {
		if err := b.SetString(language.BrazilianPortuguese, key, msg); err != nil {
			panic(fmt.Sprintf("registering message %q: %v", key, err))
		}
	}
	return b
}

// newPrinter returns a printer for a supported locale such as "en", "pt"
// or "pt-BR".
func newPrinter(locale string) (*message.Printer, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("unsupported locale %q: %w", locale, err)
	}
	_, idx, conf := localeMatcher.Match(tag)
	if conf == language.No {
		return nil, fmt.Errorf("unsupported locale %q: must be en or pt-BR", locale)
	}
	return message.NewPrinter(supportedLocales[idx], message.Catalog(messages)), nil
}
