package code

import (
	"strconv"
	"strings"
	"time"
)

type Visibility int

const (
	Public Visibility = iota
	Private
)

func (v Visibility) String() string {
	switch v {
	case Public:
		return "Public"
	case Private:
		return "Private"
	default:
		return "Visibility(" + strconv.Itoa(int(v)) + ")"
	}
}

// ParseVisibility accepts Public or Private in any case. Anything else is Private.
func ParseVisibility(s string) Visibility {
	if strings.EqualFold(strings.TrimSpace(s), "public") {
		return Public
	}
	return Private
}

type Extension int

const (
	TXT Extension = iota
	PY
	JAVA
	CPP
	JS
	HTML
	CSS
	JSON
	XML
	MD
	KT
)

var extensionNames = [...]string{"txt", "py", "java", "cpp", "js", "html", "css", "json", "xml", "md", "kt"}

func (e Extension) String() string {
	if e >= 0 && int(e) < len(extensionNames) {
		return extensionNames[e]
	}
	return "Extension(" + strconv.Itoa(int(e)) + ")"
}

// ParseExtension matches an extension name, with or without a leading dot,
// and falls back to txt.
func ParseExtension(s string) Extension {
	s = strings.TrimPrefix(strings.TrimSpace(s), ".")
	for i, name := range extensionNames {
		if strings.EqualFold(name, s) {
			return Extension(i)
		}
	}
	return TXT
}

type Metadata struct {
	TotalFiles   int
	TotalFolders int
	TotalSize    int64
	LastModified time.Time
	License      *string
	Visibility   Visibility
}

type Repo struct {
	ID          int64
	OwnerID     int64
	Name        string
	Description *string
	CreatedAt   time.Time
	Metadata    Metadata
}

// Entry is a folder or a file. Folders have no content.
type Entry struct {
	ID            int64
	RepositoryID  int64
	ParentID      *int64
	Name          string
	IsDirectory   bool
	Extension     Extension
	Content       string
	NumberOfLines int
	Size          int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Node is an entry with its descendants.
type Node struct {
	Entry
	Children []*Node
}

// CountLines counts newline-separated lines. Empty content is one line.
func CountLines(content string) int {
	return strings.Count(content, "\n") + 1
}

// setContent stores content with its line count and UTF-8 byte size.
func (e *Entry) setContent(content string) {
	e.Content = content
	e.NumberOfLines = CountLines(content)
	e.Size = int64(len(content))
}

// buildTree nests entries under their parents, starting from the entries whose
// parent is rootID. Sibling order follows the order of entries.
func buildTree(entries []Entry, rootID *int64) []*Node {
	children := make(map[int64][]*Node, len(entries))
	var roots []*Node

	nodes := make([]*Node, len(entries))
	for i := range entries {
		nodes[i] = &Node{Entry: entries[i], Children: []*Node{}}
	}

	for _, n := range nodes {
		switch {
		case sameParent(n.ParentID, rootID):
			roots = append(roots, n)
		case n.ParentID != nil:
			children[*n.ParentID] = append(children[*n.ParentID], n)
		}
	}

	for _, n := range nodes {
		if kids, ok := children[n.ID]; ok {
			n.Children = kids
		}
	}

	if roots == nil {
		roots = []*Node{}
	}
	return roots
}

func sameParent(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
