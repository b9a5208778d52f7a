package model

// PatchOp is a JSON-Patch operation name.
type PatchOp string

const (
	OpAdd     PatchOp = "add"
	OpReplace PatchOp = "replace"
	OpRemove  PatchOp = "remove"
)

// PathRelations appends a relation to the work item.
const PathRelations = "/relations/-"

// PatchOperation is one entry of a work item JSON-Patch document.
type PatchOperation struct {
	Op    PatchOp `json:"op"`
	Path  string  `json:"path"`
	Value any     `json:"value,omitempty"`
}

// PatchDocument is an ordered list of patch operations.
type PatchDocument []PatchOperation

// FieldPath returns the patch path for a field reference name.
func FieldPath(field string) string {
	return "/fields/" + field
}

// AddField appends an "add" of value to field.
func (d PatchDocument) AddField(field string, value any) PatchDocument {
	return append(d, PatchOperation{Op: OpAdd, Path: FieldPath(field), Value: value})
}

// AddRelation appends a relation to the document.
func (d PatchDocument) AddRelation(rel Relation) PatchDocument {
	return append(d, PatchOperation{Op: OpAdd, Path: PathRelations, Value: rel})
}

// Empty reports whether the document has no operations.
func (d PatchDocument) Empty() bool {
	return len(d) == 0
}

// Find returns the first operation on field, if any.
func (d PatchDocument) Find(field string) (PatchOperation, bool) {
	path := FieldPath(field)
	for _, op := range d {
		if op.Path == path {
			return op, true
		}
	}
	return PatchOperation{}, false
}
