package core

import (
	"context"
	"fmt"
	"log/slog"
)

type AnalysisEvent int

// trace events

const (
	PrimarySelected AnalysisEvent = iota
	SecondarySelected
	NoSecondary
	ScenarioEvaluated
	PathDropped
	PathLooped
)

// warn events

const (
	InconsistentState AnalysisEvent = iota + 1000
	IncompleteScan
)

func (e AnalysisEvent) String() string {
	switch e {
	case PrimarySelected:
		return "PrimarySelected"
	case SecondarySelected:
		return "SecondarySelected"
	case NoSecondary:
		return "NoSecondary"
	case ScenarioEvaluated:
		return "ScenarioEvaluated"
	case PathDropped:
		return "PathDropped"
	case PathLooped:
		return "PathLooped"
	case InconsistentState:
		return "InconsistentState"
	case IncompleteScan:
		return "IncompleteScan"
	}
	return fmt.Sprintf("AnalysisEvent(%d)", int(e))
}

// Observer receives the events emitted while building tables and scanning
// failures. Implementations must be safe for concurrent use.
type Observer interface {
	Log(event AnalysisEvent, desc string, args ...any)
}

type SlogObserver struct {
	Logger *slog.Logger
}

func (o SlogObserver) Log(event AnalysisEvent, desc string, args ...any) {
	level := slog.LevelDebug
	if event >= InconsistentState {
		level = slog.LevelWarn
	}
	ctx := context.Background()
	if !o.Logger.Enabled(ctx, level) {
		return
	}
	o.Logger.Log(ctx, level, event.String()+" "+desc, args...)
}

type discardObserver struct{}

func (discardObserver) Log(AnalysisEvent, string, ...any) {}

// Discard drops every event
var Discard Observer = discardObserver{}

func observerOrDiscard(o Observer) Observer {
	if o == nil {
		return Discard
	}
	return o
}
