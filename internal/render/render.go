package render

import (
	"fmt"
	"strings"

	"github.com/apalumbo/stima/internal/estimate"
	"github.com/apalumbo/stima/internal/phase"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	rangeHeading = "### Riepilogo stime"
	finalHeading = "### Preventivo finale"

	// RangeMarker and FinalMarker open a previously generated summary
	// block; the rewriter truncates the document at whichever it finds.
	RangeMarker = "---\n\n" + rangeHeading
	FinalMarker = "---\n\n" + finalHeading

	costDisclaimer     = "*La stima non include eventuali costi esterni (licenze, servizi di terze parti, hosting).*"
	timelineDisclaimer = "*La timeline può variare in base alla disponibilità reciproca e ai tempi di feedback.*"
	closingDisclaimer  = "*Il presente preventivo è indicativo e potrà essere aggiornato qualora il perimetro del progetto cambiasse.*"
)

// italian renders numbers with Italian separators (1.120 and 1.330,00).
var italian = message.NewPrinter(language.Italian)

func euro0(v float64) string {
	return italian.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(0)))
}

func euro2(v float64) string {
	return italian.Sprintf("%v", number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Summary renders the markdown summary block for the given phases and
// aggregate. Output is deterministic: identical inputs produce identical
// text, which is what makes the rewrite idempotent.
func Summary(phases []phase.Phase, agg estimate.Aggregate, cfg estimate.Config) string {
	if cfg.FinalQuote {
		return finalSummary(phases, agg, cfg)
	}
	return rangeSummary(phases, agg, cfg)
}

func rangeSummary(phases []phase.Phase, agg estimate.Aggregate, cfg estimate.Config) string {
	var b strings.Builder

	b.WriteString("---\n\n")
	b.WriteString(rangeHeading + "\n\n")
	b.WriteString("| Fase | Ore Min | Ore Max |\n")
	b.WriteString("| :--- | :---: | :---: |\n")
	for _, p := range phases {
		fmt.Fprintf(&b, "| %s | %d | %d |\n", p.Name, p.MinHours, p.MaxHours)
	}
	fmt.Fprintf(&b, "| **TOTALE** | **%d** | **%d** |\n", agg.TotalHoursMin, agg.TotalHoursMax)

	b.WriteString("\n### Stima economica\n\n")
	fmt.Fprintf(&b, "**Range di prezzo: €%s - €%s**\n\n", euro0(agg.PriceMin), euro0(agg.PriceMax))
	b.WriteString(costDisclaimer + "\n\n")

	b.WriteString("### Timeline stimata\n\n")
	fmt.Fprintf(&b, "**%d-%d settimane** per il completamento.\n\n", agg.WeeksMin, agg.WeeksMax)
	b.WriteString(timelineDisclaimer + "\n\n")

	writeTerms(&b, cfg)
	return b.String()
}

func finalSummary(phases []phase.Phase, agg estimate.Aggregate, cfg estimate.Config) string {
	var b strings.Builder

	b.WriteString("---\n\n")
	b.WriteString(finalHeading + "\n\n")
	b.WriteString("| Fase | Ore |\n")
	b.WriteString("| :--- | :---: |\n")
	for _, p := range phases {
		fmt.Fprintf(&b, "| %s | %d |\n", p.Name, estimate.AverageHours(p))
	}
	finalHours := agg.FinalHours()
	fmt.Fprintf(&b, "| **TOTALE** | **%d** |\n", finalHours)

	finalPrice := estimate.FinalPrice(agg, cfg)

	b.WriteString("\n### Costo del progetto\n\n")
	if finalHours > 0 {
		fmt.Fprintf(&b, "Tariffa oraria effettiva: €%s/ora\n\n", euro0(finalPrice/float64(finalHours)))
	}
	fmt.Fprintf(&b, "**Totale: €%s**\n\n", euro2(finalPrice))

	b.WriteString("### Timeline\n\n")
	fmt.Fprintf(&b, "**%d settimane** per il completamento.\n\n", agg.FinalWeeks())

	writeTerms(&b, cfg)
	return b.String()
}

// writeTerms emits the payment, feedback and closing paragraphs shared by
// both modes. A configured milestone count switches the payment phrasing
// from down-payment to per-milestone billing.
func writeTerms(b *strings.Builder, cfg estimate.Config) {
	if cfg.Milestones > 0 {
		fmt.Fprintf(b, "**Modalità di pagamento**: suddiviso in %d milestone concordate durante il progetto.\n\n", cfg.Milestones)
	} else {
		fmt.Fprintf(b, "**Modalità di pagamento**: %d%% all'avvio del progetto, saldo alla consegna.\n\n", cfg.DownPaymentPct)
	}
	fmt.Fprintf(b, "**Finestra di feedback**: %d settimane di revisioni incluse dopo la consegna.\n\n", cfg.FeedbackWeeks)
	b.WriteString(closingDisclaimer + "\n")
}
