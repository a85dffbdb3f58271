// Package lang implements the quill language front end and evaluator: the
// annotation pass that resolves each token's semantic role, the
// scope-resolving interpreter that builds the typed value tree, and the
// arithmetic expression evaluator.
//
// Processing is a strict pipeline. [Annotate] turns the lexer's raw token
// stream into an [AnnotatedToken] stream, tracking group nesting, lookup
// versus definition identifier roles, and extracted expressions. An
// [Interpreter] consumes the annotated stream in one pass, committing each
// assignment into its [Scope] tree and resolving references strictly top
// to bottom. Inspect directives are rendered to the interpreter's injected
// sink in source order.
//
// Annotation results are cached by source hash through [AnnotateString];
// resolved trees serialize through [Dump], [MarshalJSON], and
// [MarshalYAML].
package lang
