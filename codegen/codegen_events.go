package codegen

import (
	"github.com/crytic/huffgen/artifacts"
	"github.com/crytic/huffgen/events"
)

// CodegenEvents describes the event emitters of a Codegen session.
type CodegenEvents struct {
	// MacroExpanded emits events when a macro, top-level or invoked, has been fully expanded.
	MacroExpanded events.EventEmitter[MacroExpandedEvent]

	// ArtifactExported emits events when the session's artifact has been exported, or when there was nothing to
	// export.
	ArtifactExported events.EventEmitter[ArtifactExportedEvent]
}

// MacroExpandedEvent describes an event where a macro has been expanded.
type MacroExpandedEvent struct {
	// Codegen is the session that expanded the macro.
	Codegen *Codegen

	// MacroName is the name of the expanded macro.
	MacroName string

	// Depth is the invocation depth of the macro, zero for the entry point of an expansion.
	Depth int

	// Size is the number of bytes the expansion produced.
	Size int
}

// ArtifactExportedEvent describes an event where an export of the session's artifact has completed.
type ArtifactExportedEvent struct {
	// Codegen is the session that exported its artifact.
	Codegen *Codegen

	// Path is the path the artifact was exported to.
	Path string

	// Result describes whether anything was written.
	Result artifacts.ExportResult
}
