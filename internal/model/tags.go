package model

import "strings"

// TagSeparator is the canonical separator of the System.Tags field.
const TagSeparator = "; "

// TagSet is an ordered set of work item tags. Membership is by whole tag,
// compared case-insensitively the way Azure Boards compares tags.
type TagSet struct {
	tags []string
}

// ParseTags splits a System.Tags value on ';', dropping blanks.
func ParseTags(raw string) TagSet {
	var ts TagSet
	for _, part := range strings.Split(raw, ";") {
		ts = ts.Add(part)
	}
	return ts
}

// NewTagSet builds a set from tags in order.
func NewTagSet(tags ...string) TagSet {
	var ts TagSet
	for _, t := range tags {
		ts = ts.Add(t)
	}
	return ts
}

func (ts TagSet) index(tag string) int {
	tag = strings.TrimSpace(tag)
	for i, t := range ts.tags {
		if strings.EqualFold(t, tag) {
			return i
		}
	}
	return -1
}

// Contains reports whether tag is in the set.
func (ts TagSet) Contains(tag string) bool {
	return ts.index(tag) >= 0
}

// Add returns a set with tag appended, unless it is blank or already present.
func (ts TagSet) Add(tag string) TagSet {
	tag = strings.TrimSpace(tag)
	if tag == "" || ts.Contains(tag) {
		return ts
	}
	out := make([]string, len(ts.tags), len(ts.tags)+1)
	copy(out, ts.tags)
	return TagSet{tags: append(out, tag)}
}

// Remove returns a set without tag.
func (ts TagSet) Remove(tag string) TagSet {
	i := ts.index(tag)
	if i < 0 {
		return ts
	}
	out := make([]string, 0, len(ts.tags)-1)
	out = append(out, ts.tags[:i]...)
	return TagSet{tags: append(out, ts.tags[i+1:]...)}
}

// Len returns the number of tags.
func (ts TagSet) Len() int {
	return len(ts.tags)
}

// Slice returns a copy of the tags in order.
func (ts TagSet) Slice() []string {
	return append([]string(nil), ts.tags...)
}

// String renders the set in System.Tags form.
func (ts TagSet) String() string {
	return strings.Join(ts.tags, TagSeparator)
}
