package pipeline

import (
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/cv-generator/internal/types"
)

// Stage is a state of a single generation. A cell moves through the stages
// in order and either reaches StageComplete or fails at one of them.
type Stage string

const (
	StageValidated     Stage = "validated"
	StageStyleResolved Stage = "style_resolved"
	StageRendered      Stage = "rendered"
	StageEncoded       Stage = "encoded"
	StageComplete      Stage = "complete"
)

// StageDefinition describes one stage
type StageDefinition struct {
	Name        Stage
	Description string
}

// StageRegistry lists the stages in transition order
var StageRegistry = []StageDefinition{
	{Name: StageValidated, Description: "mandatory fields and format checked"},
	{Name: StageStyleResolved, Description: "template defaults merged with overrides"},
	{Name: StageRendered, Description: "renderer produced HTML or a document model"},
	{Name: StageEncoded, Description: "format backend produced bytes"},
	{Name: StageComplete, Description: "bytes wrapped as a data URI"},
}

// Stages returns the stage names in transition order
func Stages() []Stage {
	out := make([]Stage, len(StageRegistry))
	for i, def := range StageRegistry {
		out[i] = def.Name
	}
	return out
}

// StageError records the stage a generation failed to reach
type StageError struct {
	Stage Stage
	Cause error
}

func (e *StageError) Error() string {
	return "generation failed at " + string(e.Stage) + ": " + e.Cause.Error()
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

// tracker logs stage transitions for one cell
type tracker struct {
	logger  *zap.Logger
	current Stage
	started time.Time
}

func newTracker(logger *zap.Logger, template types.TemplateID, format types.Format) *tracker {
	return &tracker{
		logger:  logger.With(zap.String("template", string(template)), zap.String("format", string(format))),
		started: time.Now(),
	}
}

// reach marks stage as reached
func (t *tracker) reach(stage Stage) {
	t.current = stage
	t.logger.Debug("stage reached", zap.String("stage", string(stage)), zap.Duration("elapsed", time.Since(t.started)))
}

// fail wraps err with the stage that could not be reached
func (t *tracker) fail(stage Stage, err error) error {
	t.logger.Debug("stage failed", zap.String("stage", string(stage)), zap.Error(err))
	return &StageError{Stage: stage, Cause: err}
}
