package analyzer

import (
	"context"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/policyaudit/policyaudit/pkg/catalog"
	"github.com/policyaudit/policyaudit/pkg/extract"
	"github.com/policyaudit/policyaudit/pkg/match"
	"github.com/policyaudit/policyaudit/pkg/oracle"
	"github.com/policyaudit/policyaudit/pkg/report"
	"github.com/policyaudit/policyaudit/pkg/text"
)

// DefaultChunkTokens is the per-chunk token budget for document splitting.
const DefaultChunkTokens = 2000

// ExtractFunc extracts plain text from raw document bytes. It is injectable so
// tests can bypass PDF parsing.
type ExtractFunc func(content []byte) (extracted string, err error)

// Analyzer runs the full compliance pipeline for one document at a time:
// extract, normalize, chunk, match, score, consolidate, render.
type Analyzer struct {
	oracle       *oracle.Client
	counter      *text.Counter
	requirements []catalog.Requirement
	renderer     *report.Renderer
	extractText  ExtractFunc
	chunkTokens  int
	logger       *charmlog.Logger
}

// New creates an analyzer over the given scoring client and requirement
// catalog. chunkTokens <= 0 selects DefaultChunkTokens.
func New(
	oracleClient *oracle.Client,
	counter *text.Counter,
	requirements []catalog.Requirement,
	renderer *report.Renderer,
	chunkTokens int,
	logger *charmlog.Logger,
) (a *Analyzer) {
	if chunkTokens <= 0 {
		chunkTokens = DefaultChunkTokens
	}
	a = &Analyzer{
		oracle:       oracleClient,
		counter:      counter,
		requirements: requirements,
		renderer:     renderer,
		extractText:  extract.Text,
		chunkTokens:  chunkTokens,
		logger:       logger,
	}
	return a
}

// AnalyzePolicy runs the pipeline over one uploaded document and returns the
// record for the persistence collaborator. Only extraction and report-writing
// failures abort; scoring failures degrade per requirement.
func (a *Analyzer) AnalyzePolicy(ctx context.Context, fileContent []byte, fileName string) (rec Record, err error) {
	var policyText string
	policyText, err = a.extractText(fileContent)
	if err != nil {
		err = errors.Wrapf(err, "failed to extract text from %s", fileName)
		return rec, err
	}

	policyText = text.Normalize(policyText)
	chunks := a.counter.SplitChunks(policyText, a.chunkTokens)
	a.logger.Info("split document into chunks", "file", fileName, "chunks", len(chunks))

	var allResults []oracle.ScoreResult
	for i, chunk := range chunks {
		a.logger.Info("processing chunk", "chunk", i+1, "total", len(chunks), "tokens", chunk.Tokens)
		allResults = append(allResults, a.processChunk(ctx, chunk.Text)...)
	}

	consolidated, overallScore := Consolidate(allResults)
	ordered := a.orderByCatalog(consolidated)

	markdown := a.renderer.Markdown(ordered, overallScore)

	var pdfPath string
	pdfPath, err = a.renderer.WritePDF(ordered, overallScore, fileName)
	if err != nil {
		err = errors.Wrap(err, "failed to render PDF report")
		return rec, err
	}

	status := StatusForScore(overallScore)
	a.logger.Info("analysis complete",
		"file", fileName, "score", overallScore, "status", status, "categories", len(ordered))

	rec = Record{
		FileName:         fileName,
		OverallScore:     overallScore,
		MarkdownReport:   markdown,
		PDFReport:        pdfPath,
		ComplianceStatus: status,
		CreatedAt:        time.Now().UTC(),
	}
	return rec, err
}

// processChunk matches one chunk's paragraphs against every requirement and
// scores each accepted match.
func (a *Analyzer) processChunk(ctx context.Context, chunk string) (results []oracle.ScoreResult) {
	sections := match.SplitParagraphs(chunk)

	for _, req := range a.requirements {
		best, similarity := match.BestMatch(req.Text, sections)
		if best == "" {
			continue
		}

		a.logger.Debug("matched requirement", "category", req.Category, "similarity", similarity)
		results = append(results, a.oracle.Score(ctx, best, req))
	}

	return results
}

// orderByCatalog lists consolidated results in catalog order so report output
// is deterministic.
func (a *Analyzer) orderByCatalog(consolidated map[string]oracle.ScoreResult) (ordered []oracle.ScoreResult) {
	for _, req := range a.requirements {
		if result, ok := consolidated[req.Category]; ok {
			ordered = append(ordered, result)
		}
	}
	return ordered
}
