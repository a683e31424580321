// Package parser implements the selection mini-language (C4): it turns the
// textual expressions the CLI and --choose/--filter/--sort-by flags accept
// into an Expression tree that eval can walk.
package parser

import "github.com/arnodel/jsel/value"

// Expression is the parsed form of a selection's expression tree. It is
// a closed sum type: the only implementations live in this file, matching
// the tagged-union idiom the rest of the module uses for value.Value.
type Expression interface {
	expression()
}

// Constant is a literal JSON value appearing directly in an expression.
type Constant struct {
	Value value.Value
}

// Root refers to the current input, i.e. ".".
type Root struct{}

// PathStep is one hop of an Extract path: either a key lookup (.foo) or an
// index lookup (#3).
type PathStep struct {
	Key     string
	IsIndex bool
	Index   int
}

// Extract walks ParentDepth levels up the parent-input stack (0 means the
// current input) and then follows Path, a sequence of key/index hops.
type Extract struct {
	ParentDepth int
	Path        []PathStep
}

// Call invokes a named function (looked up in the function registry) with
// the given argument expressions. SetVariable and DefineMacro are modelled
// as ordinary Calls to "set" and "define".
type Call struct {
	Name string
	Args []Expression
}

// VariableRef reads a lexically bound variable, i.e. ":name".
type VariableRef struct {
	Name string
}

// MacroRef expands a lexically bound, late-evaluated macro, i.e. "@name".
type MacroRef struct {
	Name string
}

// InputContextTag enumerates the source-position fields readable through
// "&tag".
type InputContextTag string

const (
	TagIndex           InputContextTag = "index"
	TagIndexInFile     InputContextTag = "index-in-file"
	TagStartedAtLine   InputContextTag = "started-at-line-number"
	TagStartedAtChar   InputContextTag = "started-at-char-number"
	TagEndedAtLine     InputContextTag = "ended-at-line-number"
	TagEndedAtChar     InputContextTag = "ended-at-char-number"
	TagFileName        InputContextTag = "file-name"
)

// InputContextField reads one field of the current record's InputContext.
type InputContextField struct {
	Tag InputContextTag
}

// PreviousSelection reads the result of an earlier named selection in the
// same --choose list, i.e. "/name/".
type PreviousSelection struct {
	Name string
}

func (Constant) expression()           {}
func (Root) expression()               {}
func (Extract) expression()            {}
func (Call) expression()               {}
func (VariableRef) expression()        {}
func (MacroRef) expression()           {}
func (InputContextField) expression()  {}
func (PreviousSelection) expression()  {}

// Selection is a named top-level expression.
type Selection struct {
	Name string
	Root Expression
}
