package model

import "fmt"

// Azure Boards field reference names used by the mirror.
const (
	FieldTitle         = "System.Title"
	FieldDescription   = "System.Description"
	FieldReproSteps    = "Microsoft.VSTS.TCM.ReproSteps"
	FieldTags          = "System.Tags"
	FieldState         = "System.State"
	FieldHistory       = "System.History"
	FieldAreaPath      = "System.AreaPath"
	FieldIterationPath = "System.IterationPath"
)

// MarkerTag is the tag every mirrored work item carries.
const MarkerTag = "GitHub Issue"

// RelationHyperlink is the relation type linking a work item to a URL.
const RelationHyperlink = "Hyperlink"

// WorkItem is a snapshot of an Azure Boards work item.
type WorkItem struct {
	ID        int            `json:"id"`
	Rev       int            `json:"rev"`
	URL       string         `json:"url"`
	Fields    map[string]any `json:"fields"`
	Relations []Relation     `json:"relations,omitempty"`
}

// Relation is a link from a work item to another resource.
type Relation struct {
	Rel        string         `json:"rel"`
	URL        string         `json:"url"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// StringField returns the named field as a string, or "" when unset.
func (w WorkItem) StringField(name string) string {
	v, ok := w.Fields[name]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func (w WorkItem) Title() string       { return w.StringField(FieldTitle) }
func (w WorkItem) Description() string { return w.StringField(FieldDescription) }
func (w WorkItem) ReproSteps() string  { return w.StringField(FieldReproSteps) }
func (w WorkItem) State() string       { return w.StringField(FieldState) }

// Tags parses the work item's tag field.
func (w WorkItem) Tags() TagSet {
	return ParseTags(w.StringField(FieldTags))
}

// MirrorTitle is the title a work item mirroring issue number n must carry.
func MirrorTitle(title string, number int) string {
	return fmt.Sprintf("%s %s", title, IssueReference(number))
}

// IssueReference is the title suffix identifying the source issue.
func IssueReference(number int) string {
	return fmt.Sprintf("(GitHub Issue #%d)", number)
}

// LinkToken is the AB# token that cross-links an issue body to a work item.
func LinkToken(id int) string {
	return fmt.Sprintf("AB#%d", id)
}
