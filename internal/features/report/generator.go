package report

import (
	"context"
	"fmt"

	"voicelens/internal/features/catalog"
	"voicelens/internal/features/grievance"
	"voicelens/internal/gemini"

	"go.uber.org/zap"
)

// MsgInsufficientData is returned for an empty grievance set; the model is
// never invoked in that case.
const MsgInsufficientData = "Not enough grievance data has been collected to run this analysis yet."

// Generator produces the content of one report. It makes at most one
// outbound model call per invocation and never returns an error: every
// failure degrades to inline, user-visible text.
type Generator interface {
	Generate(ctx context.Context, def catalog.Definition, grievances []grievance.Grievance) string
}

type GeneratorImpl struct {
	Model  gemini.Client
	Logger *zap.Logger
}

func NewGenerator(model gemini.Client, logger *zap.Logger) Generator {
	return &GeneratorImpl{
		Model:  model,
		Logger: logger,
	}
}

func (g *GeneratorImpl) Generate(ctx context.Context, def catalog.Definition, grievances []grievance.Grievance) string {
	if len(grievances) == 0 {
		return MsgInsufficientData
	}

	switch def.Strategy {
	case catalog.StrategyStructured:
		return g.generateStructured(ctx, def, grievances)
	case catalog.StrategyPlain:
		return g.generatePlain(ctx, def, grievances)
	default:
		// Deferred: unfinished report types skip generation on purpose so
		// they never spend model budget.
		return fmt.Sprintf("%s is under development. Generation for this report type is skipped to avoid model cost until its prompt ships.", def.Title)
	}
}

func (g *GeneratorImpl) generatePlain(ctx context.Context, def catalog.Definition, grievances []grievance.Grievance) string {
	if !g.Model.Enabled() {
		return placeholderContent(def.Title, len(grievances))
	}

	text, err := g.Model.GenerateText(ctx, buildPlainPrompt(def.Title, grievances))
	if err != nil {
		g.Logger.Error("report generation failed",
			zap.String("report_id", def.ID), zap.Error(err))
		return fmt.Sprintf("Report generation failed: %v", err)
	}
	return text
}

func (g *GeneratorImpl) generateStructured(ctx context.Context, def catalog.Definition, grievances []grievance.Grievance) string {
	if !g.Model.Enabled() {
		return placeholderContent(def.Title, len(grievances))
	}

	raw, err := g.Model.GenerateJSON(ctx, buildStructuredPrompt(grievances))
	if err != nil {
		g.Logger.Error("structured report generation failed",
			zap.String("report_id", def.ID), zap.Error(err))
		return fmt.Sprintf("Report generation failed: %v", err)
	}
	return FormatStructured(raw)
}

// placeholderContent keeps the dashboard demoable without a model
// credential: deterministic output naming the report and the record count.
func placeholderContent(title string, recordCount int) string {
	return fmt.Sprintf("[Placeholder Analysis] %s\n\nAnalyzed %d grievance records. Serious issues are visible in the data, but the full analysis requires a configured model credential (GEMINI_API_KEY).", title, recordCount)
}
