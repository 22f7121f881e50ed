package audit

import (
	"errors"
	"fmt"

	"github.com/robinvdvleuten/saft/ast"
)

// ErrNoDocuments is returned when a pass is started without a document collection.
var ErrNoDocuments = errors.New("audit file has no payments table")

// Entry is a single violation recorded against an entity of the audit file.
type Entry struct {
	// Entity is the node the violation is attached to.
	Entity ast.Node
	// Document owns the entity. It is nil for table level entries.
	Document ast.Document
	Code     Code
	Kind     Kind
	Severity Severity
	Message  string
}

// Error formats the entry as "<document>: <entity>: <message>". The entity part is
// left out when the violation is attached to the document itself.
func (e *Entry) Error() string {
	if e.Document == nil {
		if e.Entity == nil {
			return e.Message
		}
		return fmt.Sprintf("%s: %s", e.Entity.Describe(), e.Message)
	}

	location := e.Document.Reference()
	if location == "" {
		location = e.Document.Describe()
	}

	if e.Entity == nil || e.Entity == ast.Node(e.Document) {
		return fmt.Sprintf("%s: %s", location, e.Message)
	}

	return fmt.Sprintf("%s: %s: %s", location, e.Entity.Describe(), e.Message)
}

func (e *Entry) GetDocument() ast.Document {
	return e.Document
}

// IsWarning reports whether the entry is a warning.
func (e *Entry) IsWarning() bool {
	return e.Severity == SeverityWarning
}

// ValidationErrors wraps multiple validation errors
type ValidationErrors struct {
	Errors []error
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d validation errors occurred", len(e.Errors))
}

// Unwrap returns the underlying errors for error unwrapping
func (e *ValidationErrors) Unwrap() []error {
	return e.Errors
}
